package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v1"
	"google.golang.org/api/option"
)

// ToolkitClient implements Client against the Identity Toolkit API, the same
// endpoints the Firebase client SDKs call.
type ToolkitClient struct {
	accounts *identitytoolkit.AccountsService
}

var _ Client = (*ToolkitClient)(nil)

// NewToolkitClient creates a client authenticated with the project's web API key.
// Extra options (an endpoint override in tests) are appended after the key.
func NewToolkitClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*ToolkitClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("identity toolkit init: %w", err)
	}
	return &ToolkitClient{accounts: svc.Accounts}, nil
}

func (c *ToolkitClient) SignInWithEmailAndPassword(ctx context.Context, email, password string) (string, error) {
	resp, err := c.accounts.SignInWithPassword(&identitytoolkit.GoogleCloudIdentitytoolkitV1SignInWithPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		if isRejected(err, credentialErrors) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("sign in: %w", err)
	}
	if resp.LocalId == "" {
		return "", ErrInvalidCredentials
	}
	return resp.LocalId, nil
}

// VerifyPasswordResetCode calls resetPassword without a new password, which
// only checks the code and reports the email it was issued for.
func (c *ToolkitClient) VerifyPasswordResetCode(ctx context.Context, code string) (string, error) {
	resp, err := c.accounts.ResetPassword(&identitytoolkit.GoogleCloudIdentitytoolkitV1ResetPasswordRequest{
		OobCode: code,
	}).Context(ctx).Do()
	if err != nil {
		if isRejected(err, resetCodeErrors) {
			return "", ErrInvalidResetCode
		}
		return "", fmt.Errorf("verify reset code: %w", err)
	}
	if resp.Email == "" {
		return "", ErrInvalidResetCode
	}
	return resp.Email, nil
}

var (
	credentialErrors = []string{
		"EMAIL_NOT_FOUND",
		"INVALID_PASSWORD",
		"INVALID_LOGIN_CREDENTIALS",
		"INVALID_EMAIL",
		"USER_DISABLED",
	}
	resetCodeErrors = []string{
		"EXPIRED_OOB_CODE",
		"INVALID_OOB_CODE",
		"USER_DISABLED",
		"USER_NOT_FOUND",
	}
)

// isRejected reports whether err is a 400 whose message starts with one of codes.
// The API appends detail after the code, e.g. "INVALID_PASSWORD : ...".
func isRejected(err error, codes []string) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusBadRequest {
		return false
	}
	for _, code := range codes {
		if strings.HasPrefix(apiErr.Message, code) {
			return true
		}
	}
	return false
}
