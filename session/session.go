package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNoSession is returned by Token when nobody is signed in.
var ErrNoSession = errors.New("no active session")

// renew tokens slightly before they actually expire
const expirySkew = 30 * time.Second

// Identity is the signed-in user as seen by the identity provider.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Session holds the current identity & bearer credentials, renewing
// the ID token through the refresh token as it nears expiry. It is the
// app's client.TokenSource.
type Session struct {
	mu        sync.Mutex
	identity  *IdentityClient
	logg      *zap.SugaredLogger
	user      *Identity
	creds     *Credentials
	expiresAt time.Time
}

func NewSession(identity *IdentityClient, logg *zap.SugaredLogger) *Session {
	return &Session{identity: identity, logg: logg}
}

func (s *Session) SignIn(ctx context.Context, email, password string) error {
	creds, err := s.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return err
	}

	s.install(creds)
	return nil
}

func (s *Session) SignInWithCustomToken(ctx context.Context, customToken string) error {
	creds, err := s.identity.SignInWithCustomToken(ctx, customToken)
	if err != nil {
		return err
	}

	s.install(creds)
	return nil
}

func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.creds = nil
	s.expiresAt = time.Time{}
}

// SignedIn reports whether a usable session exists. Mutation helpers
// check this before touching the network.
func (s *Session) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds != nil
}

func (s *Session) CurrentUser() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Token returns the current bearer token, refreshing it first when
// it is within expirySkew of expiring.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds == nil {
		return "", ErrNoSession
	}

	if time.Now().Add(expirySkew).Before(s.expiresAt) {
		return s.creds.IDToken, nil
	}

	creds, err := s.identity.Refresh(ctx, s.creds.RefreshToken)
	if err != nil {
		// A refresh failure does not tear down the session - the
		// stale token is still worth offering, the backend has the
		// final say on whether it is accepted.
		s.logg.Warnf("token refresh failed, using cached token: %v", err)
		return s.creds.IDToken, nil
	}

	s.installLocked(creds)
	return s.creds.IDToken, nil
}

func (s *Session) install(creds *Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installLocked(creds)
}

func (s *Session) installLocked(creds *Credentials) {
	s.creds = creds
	s.expiresAt = creds.expiresAt(time.Now())
	s.user = identityFromToken(creds.IDToken)

	// Prefer the exp claim over expiresIn when the token carries one
	if claims := tokenClaims(creds.IDToken); claims != nil && claims.ExpiresAt > 0 {
		s.expiresAt = time.Unix(claims.ExpiresAt, 0)
	}
}

type idTokenClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// tokenClaims decodes the token payload without verifying the
// signature - verification is the backend's job, the client only
// needs the claims for expiry & display.
func tokenClaims(idToken string) *idTokenClaims {
	claims := idTokenClaims{}
	parser := jwt.Parser{}

	if _, _, err := parser.ParseUnverified(idToken, &claims); err != nil {
		return nil
	}
	return &claims
}

func identityFromToken(idToken string) *Identity {
	claims := tokenClaims(idToken)
	if claims == nil {
		return nil
	}
	return &Identity{UserID: claims.Subject, Email: claims.Email}
}
