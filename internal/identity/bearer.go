package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

//go:generate mockgen -source=bearer.go -destination=../mock/identity_mock.go -package=mock

// CredentialParser verifies a bearer credential.
type CredentialParser interface {
	ParseCredential(ctx context.Context, token string) (models.Identity, error)
}

// BearerStrategy reads "Authorization: Bearer <token>".
type BearerStrategy struct {
	parser CredentialParser
}

func NewBearerStrategy(parser CredentialParser) *BearerStrategy {
	return &BearerStrategy{parser: parser}
}

func (s *BearerStrategy) Name() string { return "bearer" }

// Resolve returns Unauthenticated when the header is absent or uses another
// scheme, and Failed when a bearer token is present but does not verify.
func (s *BearerStrategy) Resolve(r *http.Request) Result {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !hasBearerScheme(header) {
		return Result{Outcome: Unauthenticated}
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		return Result{Outcome: Failed, Err: err}
	}

	identity, err := s.parser.ParseCredential(r.Context(), token)
	if err != nil {
		return Result{Outcome: Failed, Err: err}
	}

	return Result{Outcome: Authenticated, Identity: identity}
}

func hasBearerScheme(header string) bool {
	scheme, _, _ := strings.Cut(header, " ")
	return strings.EqualFold(scheme, "Bearer")
}
