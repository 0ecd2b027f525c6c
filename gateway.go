package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Body is a gateway response classified by its declared content type. JSON
// responses carry the envelope's data; HTML responses carry raw markup for
// payment-redirect flows; anything else leaves both empty.
type Body struct {
	Timestamp int64
	Data      json.RawMessage
	HTML      string
}

// envelope is the server's success wrapper: { timestamp, data: {...} }.
type envelope struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// errorEnvelope covers both failure shapes the server produces: a structured
// { data: { errors: [...] } } list or a flat { message }.
type errorEnvelope struct {
	Data struct {
		Errors []FieldError `json:"errors"`
	} `json:"data"`
	Message string `json:"message"`
}

// Gateway is the single chokepoint for outbound calls. It attaches the
// bearer token, classifies failures, and invalidates the session on 401.
type Gateway struct {
	baseURL      string
	client       *http.Client
	session      *Session
	nav          Navigator
	observer     Observer
	newRequestID func() string
}

func newGateway(baseURL string, session *Session) *Gateway {
	return &Gateway{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		client:       http.DefaultClient,
		session:      session,
		newRequestID: uuid.NewString,
	}
}

// Send issues one JSON request. payload may be nil for body-less methods.
// Exactly one network attempt is made; there is no implicit retry.
func (g *Gateway) Send(ctx context.Context, method, path string, payload any) (Body, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return Body{}, err
		}
		body = bytes.NewReader(encoded)
	}
	return g.do(ctx, method, path, body, "application/json")
}

// FileUpload is one file part of a multipart request.
type FileUpload struct {
	Field   string
	Name    string
	Content []byte
}

// SendMultipart issues one multipart/form-data request. The content type is
// taken from the multipart writer so the boundary is generated correctly.
func (g *Gateway) SendMultipart(ctx context.Context, method, path string, fields map[string]string, file FileUpload) (Body, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return Body{}, err
		}
	}
	if file.Field != "" {
		part, err := w.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return Body{}, err
		}
		if _, err := part.Write(file.Content); err != nil {
			return Body{}, err
		}
	}
	if err := w.Close(); err != nil {
		return Body{}, err
	}
	return g.do(ctx, method, path, &buf, w.FormDataContentType())
}

func (g *Gateway) do(ctx context.Context, method, path string, body io.Reader, contentType string) (Body, error) {
	start := time.Now()
	requestID := g.newRequestID()

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return Body{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json, text/html")
	req.Header.Set("X-Request-ID", requestID)
	if token := g.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := g.client.Do(req)
	if err != nil {
		gerr := connectionError(err)
		g.observe(ctx, method, path, requestID, 0, gerr, start)
		return Body{}, gerr
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		gerr := connectionError(err)
		g.observe(ctx, method, path, requestID, res.StatusCode, gerr, start)
		return Body{}, gerr
	}

	if res.StatusCode == http.StatusUnauthorized {
		// Invalidation is a side effect; the failure still propagates.
		_ = g.session.Logout(ctx)
		if g.nav != nil {
			g.nav.RedirectToLogin()
		}
		gerr := authorizationError(res.StatusCode)
		g.observe(ctx, method, path, requestID, res.StatusCode, gerr, start)
		return Body{}, gerr
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		gerr := classifyFailure(res.StatusCode, raw)
		g.observe(ctx, method, path, requestID, res.StatusCode, gerr, start)
		return Body{}, gerr
	}

	out, err := classifyBody(res.Header.Get("Content-Type"), raw)
	g.observe(ctx, method, path, requestID, res.StatusCode, err, start)
	return out, err
}

func classifyFailure(status int, raw []byte) *GatewayError {
	var failure errorEnvelope
	if err := json.Unmarshal(raw, &failure); err == nil {
		if len(failure.Data.Errors) > 0 {
			return validationError(status, failure.Data.Errors)
		}
		if failure.Message != "" {
			return serverError(status, failure.Message)
		}
	}
	return serverError(status, "")
}

func classifyBody(contentType string, raw []byte) (Body, error) {
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}
	switch {
	case strings.Contains(mediaType, "json"):
		var env envelope
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &env); err != nil {
				return Body{}, serverError(0, "malformed response body")
			}
		}
		return Body{Timestamp: env.Timestamp, Data: env.Data}, nil
	case strings.Contains(mediaType, "html"):
		return Body{HTML: string(raw)}, nil
	default:
		return Body{}, nil
	}
}

func (g *Gateway) observe(ctx context.Context, method, path, requestID string, status int, err error, start time.Time) {
	if g.observer == nil {
		return
	}
	g.observer.OnGatewayOp(ctx, method, path, requestID, status, err, time.Since(start))
}

// Fetch decodes the envelope data of a JSON response into T.
func Fetch[T any](ctx context.Context, g *Gateway, method, path string, payload any) (T, error) {
	var zero T
	res, err := g.Send(ctx, method, path, payload)
	if err != nil {
		return zero, err
	}
	if len(res.Data) == 0 {
		return zero, nil
	}
	var out T
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return zero, err
	}
	return out, nil
}
