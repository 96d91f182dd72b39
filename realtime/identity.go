package realtime

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Origin says where an identity came from
type Origin string

const (
	// OriginManaged identities are backed by a verified guest token
	OriginManaged Origin = "managed"
	// OriginLocal identities are generated and persisted locally when the
	// managed identity service is unusable
	OriginLocal Origin = "local"
)

// Identity is a stable participant identifier plus its origin
type Identity struct {
	UID    string
	Origin Origin
}

// ErrAnonymousAuthDisabled is returned by IssueGuestToken when no signing
// secret is configured, the analog of anonymous sign-in being disabled.
var ErrAnonymousAuthDisabled = errors.New("anonymous auth is disabled: AUTH_SECRET is not set")

// IdentityProvider resolves participant identities. Managed identities are
// HS256 guest tokens minted by IssueGuestToken; when the managed path is
// misconfigured (no secret, no token, malformed token) it falls back to a
// locally persisted random identifier rather than failing the caller.
// Verification failures that are not configuration problems (bad signature,
// expired token) propagate as hard errors.
type IdentityProvider struct {
	secret    []byte
	statePath string

	mu       sync.Mutex
	localUID string
}

// NewIdentityProvider builds a provider. secret may be empty (managed
// identity disabled); statePath is where the local fallback identifier is
// persisted across restarts.
func NewIdentityProvider(secret, statePath string) *IdentityProvider {
	return &IdentityProvider{secret: []byte(secret), statePath: statePath}
}

// EnsureIdentity resolves the identity for a presented bearer token, which
// may be empty. Repeated calls without a token return the same local
// identifier.
func (p *IdentityProvider) EnsureIdentity(presented string) (Identity, error) {
	if len(p.secret) == 0 || presented == "" {
		return Identity{UID: p.localIdentity(), Origin: OriginLocal}, nil
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(presented, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err == nil {
		sub, _ := claims["sub"].(string)
		if sub != "" {
			return Identity{UID: sub, Origin: OriginManaged}, nil
		}
		err = jwt.ErrTokenInvalidClaims
	}

	// Tampered or expired tokens are hard errors. A token that is not even
	// token-shaped is a client/config problem of the same class as
	// "anonymous auth disabled"; fall back instead of failing the caller.
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenExpired) {
		return Identity{}, err
	}
	if errors.Is(err, jwt.ErrTokenMalformed) || errors.Is(err, jwt.ErrTokenUnverifiable) || errors.Is(err, jwt.ErrTokenInvalidClaims) {
		zap.S().Warnw("managed identity unusable, falling back to local identity", "error", err)
		return Identity{UID: p.localIdentity(), Origin: OriginLocal}, nil
	}
	return Identity{}, err
}

// IssueGuestToken mints an anonymous managed identity
func (p *IdentityProvider) IssueGuestToken() (token, uid string, err error) {
	if len(p.secret) == 0 {
		return "", "", ErrAnonymousAuthDisabled
	}
	uid = uuid.New().String()
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uid,
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	})
	token, err = t.SignedString(p.secret)
	if err != nil {
		return "", "", err
	}
	return token, uid, nil
}

// localIdentity loads or generates the persisted fallback identifier,
// generated once and reused for every later call.
func (p *IdentityProvider) localIdentity() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.localUID != "" {
		return p.localUID
	}
	if b, err := os.ReadFile(p.statePath); err == nil {
		if id := strings.TrimSpace(string(b)); id != "" {
			p.localUID = id
			return p.localUID
		}
	}
	p.localUID = uuid.New().String()
	if err := os.WriteFile(p.statePath, []byte(p.localUID+"\n"), 0o600); err != nil {
		// still usable for this process lifetime
		zap.S().Warnw("failed to persist local identity", "error", err)
	}
	return p.localUID
}
