package storefront

import (
	"context"
	"net/http"
)

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResult struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

type profilePayload struct {
	User UserProfile `json:"user"`
}

// ProfileUpdate carries the mutable profile fields for PUT /users/me.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type passwordPayload struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// AccountService binds the user endpoints to the session store. Failures are
// recorded on the session so dependent UI can show them; they are also
// returned to the caller.
type AccountService struct {
	gw      *Gateway
	session *Session
}

func newAccountService(gw *Gateway, session *Session) *AccountService {
	return &AccountService{gw: gw, session: session}
}

// Login exchanges credentials for a bearer token and establishes the session.
func (a *AccountService) Login(ctx context.Context, email, password string) error {
	a.session.ClearErr()
	result, err := Fetch[loginResult](ctx, a.gw, http.MethodPost, "/users/login", credentialsPayload{Email: email, Password: password})
	if err != nil {
		a.session.setErr(err.Error())
		return err
	}
	if err := a.session.Login(ctx, result.Token, result.User); err != nil {
		a.session.setErr(err.Error())
		return err
	}
	return nil
}

// Register creates an account. It does not log in; callers follow up with
// Login so the token always takes the same path into the session.
func (a *AccountService) Register(ctx context.Context, name, email, password string) error {
	a.session.ClearErr()
	if _, err := a.gw.Send(ctx, http.MethodPost, "/users/register", registerPayload{Name: name, Email: email, Password: password}); err != nil {
		a.session.setErr(err.Error())
		return err
	}
	return nil
}

// FetchProfile loads GET /users/me into the session.
func (a *AccountService) FetchProfile(ctx context.Context) (UserProfile, error) {
	payload, err := Fetch[profilePayload](ctx, a.gw, http.MethodGet, "/users/me", nil)
	if err != nil {
		a.session.setErr(err.Error())
		return UserProfile{}, err
	}
	a.session.setProfile(&payload.User)
	return payload.User, nil
}

// UpdateProfile submits PUT /users/me and refreshes the cached profile.
func (a *AccountService) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	if _, err := a.gw.Send(ctx, http.MethodPut, "/users/me", update); err != nil {
		a.session.setErr(err.Error())
		return err
	}
	_, err := a.FetchProfile(ctx)
	return err
}

// ChangePassword submits PATCH /users/me/password.
func (a *AccountService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if _, err := a.gw.Send(ctx, http.MethodPatch, "/users/me/password", passwordPayload{OldPassword: oldPassword, NewPassword: newPassword}); err != nil {
		a.session.setErr(err.Error())
		return err
	}
	return nil
}

// UploadAvatar submits PUT /users/me/avatar as multipart form data.
func (a *AccountService) UploadAvatar(ctx context.Context, filename string, content []byte) error {
	file := FileUpload{Field: "avatar", Name: filename, Content: content}
	if _, err := a.gw.SendMultipart(ctx, http.MethodPut, "/users/me/avatar", nil, file); err != nil {
		a.session.setErr(err.Error())
		return err
	}
	return nil
}
