package storefront

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI captures the subset of DynamoDB client methods used by the vault.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type dynamoVault struct {
	client DynamoAPI
	table  string
	prefix string
	key    string
}

const (
	dynamoEnsureTableMaxAttempts = 20
	dynamoEnsureTableRetryDelay  = 150 * time.Millisecond
)

func newDynamoVault(ctx context.Context, cfg VaultConfig) (Vault, error) {
	if cfg.DynamoClient == nil {
		client, err := newDynamoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		cfg.DynamoClient = client
	}
	if err := ensureDynamoTable(ctx, cfg.DynamoClient, cfg.DynamoTable); err != nil {
		return nil, err
	}
	return &dynamoVault{
		client: cfg.DynamoClient,
		table:  cfg.DynamoTable,
		prefix: cfg.Prefix,
		key:    cfg.Key,
	}, nil
}

func newDynamoClient(ctx context.Context, cfg VaultConfig) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.DynamoRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")),
	)
	if err != nil {
		return nil, err
	}
	if cfg.DynamoEndpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{URL: cfg.DynamoEndpoint, HostnameImmutable: true}, nil
		})
		awsCfg.EndpointResolverWithOptions = resolver
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

func ensureDynamoTable(ctx context.Context, client DynamoAPI, table string) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return err
	}
	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("k"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("k"), KeyType: types.KeyTypeHash},
		},
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return err
		}
	}
	for attempt := 0; attempt < dynamoEnsureTableMaxAttempts; attempt++ {
		out, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
		if err == nil && out.Table != nil && out.Table.TableStatus == types.TableStatusActive {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dynamoEnsureTableRetryDelay):
		}
	}
	return errors.New("dynamodb vault table did not become active")
}

func (v *dynamoVault) Driver() VaultDriver { return VaultDynamo }

func (v *dynamoVault) Load(ctx context.Context) (string, bool, error) {
	out, err := v.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(v.table),
		Key:       map[string]types.AttributeValue{"k": &types.AttributeValueMemberS{Value: v.vaultKey()}},
	})
	if err != nil {
		return "", false, err
	}
	if out.Item == nil {
		return "", false, nil
	}
	attr, ok := out.Item["v"].(*types.AttributeValueMemberS)
	if !ok || attr.Value == "" {
		return "", false, nil
	}
	return attr.Value, true, nil
}

func (v *dynamoVault) Store(ctx context.Context, token string) error {
	_, err := v.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(v.table),
		Item: map[string]types.AttributeValue{
			"k": &types.AttributeValueMemberS{Value: v.vaultKey()},
			"v": &types.AttributeValueMemberS{Value: token},
		},
	})
	return err
}

func (v *dynamoVault) Clear(ctx context.Context) error {
	_, err := v.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(v.table),
		Key:       map[string]types.AttributeValue{"k": &types.AttributeValueMemberS{Value: v.vaultKey()}},
	})
	return err
}

func (v *dynamoVault) vaultKey() string {
	if v.prefix == "" {
		return v.key
	}
	return v.prefix + ":" + v.key
}
