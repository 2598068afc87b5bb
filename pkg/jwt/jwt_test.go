package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Generating RSA keys is the slow part of this suite, so the two keys every
// test needs are created once. signerKey backs the service under test and
// strangerKey plays the attacker who never held the real private key.
var (
	signerKey   = mustGenerateKey()
	strangerKey = mustGenerateKey()
)

func mustGenerateKey() *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	return key
}

const testIssuer = "api.stayloft.dev"

func newService() *Service {
	return NewTestService(signerKey, testIssuer, time.Hour)
}

// userClaims returns claims shaped like the ones the login flow issues:
// subject and user id carry the account UUID, role is user or admin.
func userClaims(role string) Claims {
	const id = "7b1c9a46-55e0-4f3d-9f0a-2d6a8c3b1e94"
	return Claims{
		Subject: id,
		UserID:  id,
		Email:   "guest@stayloft.dev",
		Role:    role,
	}
}

func mustSign(t *testing.T, s *Service, claims Claims) string {
	t.Helper()
	token, err := s.Sign(claims)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return token
}

// ============================================================================
// Claims Tests
// ============================================================================

func TestClaims_IsAdmin(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role string
		want bool
	}{
		{RoleAdmin, true},
		{RoleUser, false},
		{"", false},
		{"Admin", false},
	}
	for _, tc := range cases {
		c := Claims{Role: tc.role}
		if got := c.IsAdmin(); got != tc.want {
			t.Errorf("role %q: IsAdmin() = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestClaims_Valid_WithinWindow(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := Claims{
		NotBefore: now.Add(-time.Minute).Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}
	if err := c.Valid(); err != nil {
		t.Errorf("expected valid claims, got %v", err)
	}
}

func TestClaims_Valid_ZeroTimesSkipChecks(t *testing.T) {
	t.Parallel()

	c := Claims{}
	if err := c.Valid(); err != nil {
		t.Errorf("claims without exp or nbf should pass, got %v", err)
	}
}

func TestClaims_Valid_Expired(t *testing.T) {
	t.Parallel()

	c := Claims{ExpiresAt: time.Now().Add(-time.Minute).Unix()}
	if err := c.Valid(); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestClaims_Valid_NotYetValid(t *testing.T) {
	t.Parallel()

	c := Claims{NotBefore: time.Now().Add(time.Hour).Unix()}
	if err := c.Valid(); !errors.Is(err, ErrTokenNotYetValid) {
		t.Errorf("expected ErrTokenNotYetValid, got %v", err)
	}
}

// ============================================================================
// Sign Tests
// ============================================================================

func TestSign_StampsRegisteredClaims(t *testing.T) {
	t.Parallel()

	s := newService()
	before := time.Now().Unix()
	token := mustSign(t, s, userClaims(RoleUser))
	after := time.Now().Unix()

	claims, err := s.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Issuer != testIssuer {
		t.Errorf("issuer = %q, want %q", claims.Issuer, testIssuer)
	}
	if claims.IssuedAt < before || claims.IssuedAt > after {
		t.Errorf("iat %d not in [%d, %d]", claims.IssuedAt, before, after)
	}
	if claims.NotBefore != claims.IssuedAt {
		t.Errorf("nbf %d should match iat %d", claims.NotBefore, claims.IssuedAt)
	}
	wantExp := claims.IssuedAt + int64(time.Hour/time.Second)
	if claims.ExpiresAt != wantExp {
		t.Errorf("exp = %d, want %d", claims.ExpiresAt, wantExp)
	}
}

func TestSign_CarriesAccountClaims(t *testing.T) {
	t.Parallel()

	s := newService()
	in := userClaims(RoleAdmin)
	in.Audience = "stayloft-web"
	in.JWTID = "2f6a0c18-9d4b-4e72-8c35-d1b07a5e6f21"

	claims, err := s.Validate(mustSign(t, s, in))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if claims.Subject != in.Subject {
		t.Errorf("sub = %q, want %q", claims.Subject, in.Subject)
	}
	if claims.UserID != in.UserID {
		t.Errorf("user_id = %q, want %q", claims.UserID, in.UserID)
	}
	if claims.Email != in.Email {
		t.Errorf("email = %q, want %q", claims.Email, in.Email)
	}
	if claims.Role != RoleAdmin || !claims.IsAdmin() {
		t.Errorf("role = %q, want admin", claims.Role)
	}
	if claims.Audience != in.Audience {
		t.Errorf("aud = %q, want %q", claims.Audience, in.Audience)
	}
	if claims.JWTID != in.JWTID {
		t.Errorf("jti = %q, want %q", claims.JWTID, in.JWTID)
	}
}

func TestSign_KeepsCallerExpiration(t *testing.T) {
	t.Parallel()

	s := newService()
	in := userClaims(RoleUser)
	in.ExpiresAt = time.Now().Add(15 * time.Minute).Unix()

	claims, err := s.Validate(mustSign(t, s, in))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.ExpiresAt != in.ExpiresAt {
		t.Errorf("exp = %d, want caller value %d", claims.ExpiresAt, in.ExpiresAt)
	}
}

func TestSign_WithoutPrivateKey(t *testing.T) {
	t.Parallel()

	s := &Service{publicKey: &signerKey.PublicKey, issuer: testIssuer}
	if _, err := s.Sign(userClaims(RoleUser)); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

// ============================================================================
// Validate Tests
// ============================================================================

func TestValidate_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newService()
	claims, err := s.Validate(mustSign(t, s, userClaims(RoleUser)))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != "7b1c9a46-55e0-4f3d-9f0a-2d6a8c3b1e94" {
		t.Errorf("unexpected user_id %q", claims.UserID)
	}
	if claims.IsAdmin() {
		t.Error("regular user token should not be admin")
	}
}

func TestValidate_Malformed(t *testing.T) {
	t.Parallel()

	s := newService()
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one segment", "justoneblob"},
		{"two segments", "header.payload"},
		{"four segments", "a.b.c.d"},
		{"bad header encoding", "!!!.payload.sig"},
		{"bad payload encoding", encodeSegment([]byte(`{"alg":"RS256"}`)) + ".???.sig"},
	}
	for _, tc := range cases {
		if _, err := s.Validate(tc.token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", tc.name, err)
		}
	}
}

func TestValidate_RejectsForeignAlgorithm(t *testing.T) {
	t.Parallel()

	s := newService()
	token := mustSign(t, s, userClaims(RoleUser))
	parts := strings.Split(token, ".")

	// Swap the header for one claiming the unsigned "none" algorithm.
	parts[0] = encodeSegment([]byte(`{"alg":"none","typ":"JWT"}`))
	forged := strings.Join(parts, ".")

	if _, err := s.Validate(forged); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg none, got %v", err)
	}
}

func TestValidate_TamperedPayload(t *testing.T) {
	t.Parallel()

	s := newService()
	token := mustSign(t, s, userClaims(RoleUser))
	parts := strings.Split(token, ".")

	// Splice in a payload claiming the admin role while keeping the
	// original signature.
	escalated := mustSign(t, s, userClaims(RoleAdmin))
	parts[1] = strings.Split(escalated, ".")[1]

	if _, err := s.Validate(strings.Join(parts, ".")); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_TokenFromStrangerKey(t *testing.T) {
	t.Parallel()

	s := newService()
	stranger := NewTestService(strangerKey, testIssuer, time.Hour)

	token := mustSign(t, stranger, userClaims(RoleAdmin))
	if _, err := s.Validate(token); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	s := newService()
	in := userClaims(RoleUser)
	in.ExpiresAt = time.Now().Add(-time.Minute).Unix()

	if _, err := s.Validate(mustSign(t, s, in)); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongIssuer(t *testing.T) {
	t.Parallel()

	other := NewTestService(signerKey, "some-other-service", time.Hour)
	token := mustSign(t, other, userClaims(RoleUser))

	if _, err := newService().Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_WithoutPublicKey(t *testing.T) {
	t.Parallel()

	s := &Service{issuer: testIssuer}
	if _, err := s.Validate("a.b.c"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestValidate_GarbagePayload(t *testing.T) {
	t.Parallel()

	s := newService()
	token := mustSign(t, s, userClaims(RoleUser))
	parts := strings.Split(token, ".")
	parts[1] = encodeSegment([]byte("not json at all"))

	// The signature no longer matches the rewritten payload, so this
	// surfaces as a signature error before JSON parsing.
	if _, err := s.Validate(strings.Join(parts, ".")); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

// ============================================================================
// Service Construction Tests
// ============================================================================

func writeKeyPair(t *testing.T) (privPath, pubPath string) {
	t.Helper()
	dir := t.TempDir()
	privPath = filepath.Join(dir, "private.pem")
	pubPath = filepath.Join(dir, "public.pem")
	if err := GenerateKeyPair(privPath, pubPath); err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	return privPath, pubPath
}

func TestNewService_FromKeyFiles(t *testing.T) {
	t.Parallel()

	privPath, pubPath := writeKeyPair(t)
	s, err := NewService(Config{
		PrivateKeyPath: privPath,
		PublicKeyPath:  pubPath,
		Issuer:         testIssuer,
		ExpirationMins: 30,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	claims, err := s.Validate(mustSign(t, s, userClaims(RoleUser)))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if claims.Email != "guest@stayloft.dev" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if got := s.GetExpiration(); got != 30*time.Minute {
		t.Errorf("GetExpiration() = %v, want 30m", got)
	}
}

func TestNewService_PublicKeyOnlyValidates(t *testing.T) {
	t.Parallel()

	privPath, pubPath := writeKeyPair(t)
	signer, err := NewService(Config{PrivateKeyPath: privPath, Issuer: testIssuer, ExpirationMins: 60})
	if err != nil {
		t.Fatalf("signer NewService: %v", err)
	}
	verifier, err := NewService(Config{PublicKeyPath: pubPath, Issuer: testIssuer, ExpirationMins: 60})
	if err != nil {
		t.Fatalf("verifier NewService: %v", err)
	}

	token := mustSign(t, signer, userClaims(RoleUser))
	if _, err := verifier.Validate(token); err != nil {
		t.Errorf("verifier should accept signer's token: %v", err)
	}
	if _, err := verifier.Sign(userClaims(RoleUser)); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("verifier should not sign, got %v", err)
	}
}

func TestNewService_MissingKeyFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := NewService(Config{PrivateKeyPath: filepath.Join(dir, "absent.pem")}); err == nil {
		t.Error("expected error for missing private key")
	}
	if _, err := NewService(Config{PublicKeyPath: filepath.Join(dir, "absent.pem")}); err == nil {
		t.Error("expected error for missing public key")
	}
}

func TestNewService_RejectsMalformedPEM(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bogus.pem")
	if err := os.WriteFile(path, []byte("this is not a key"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := NewService(Config{PrivateKeyPath: path}); err == nil {
		t.Error("expected error for malformed private PEM")
	}
	if _, err := NewService(Config{PublicKeyPath: path}); err == nil {
		t.Error("expected error for malformed public PEM")
	}
}

func TestNewService_AcceptsPKCS8PrivateKey(t *testing.T) {
	t.Parallel()

	der, err := x509.MarshalPKCS8PrivateKey(signerKey)
	if err != nil {
		t.Fatalf("marshal pkcs8: %v", err)
	}
	path := filepath.Join(t.TempDir(), "pkcs8.pem")
	block := &pem.Block{Type: "PRIVATE KEY", Bytes: der}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	s, err := NewService(Config{PrivateKeyPath: path, Issuer: testIssuer, ExpirationMins: 60})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if _, err := s.Validate(mustSign(t, s, userClaims(RoleUser))); err != nil {
		t.Errorf("round trip with pkcs8 key: %v", err)
	}
}

// ============================================================================
// GenerateKeyPair Tests
// ============================================================================

func TestGenerateKeyPair_WritesUsableKeys(t *testing.T) {
	t.Parallel()

	privPath, pubPath := writeKeyPair(t)

	info, err := os.Stat(privPath)
	if err != nil {
		t.Fatalf("stat private key: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("private key mode = %o, want 0600", perm)
	}

	pubData, err := os.ReadFile(pubPath)
	if err != nil {
		t.Fatalf("read public key: %v", err)
	}
	block, _ := pem.Decode(pubData)
	if block == nil || block.Type != "PUBLIC KEY" {
		t.Fatalf("expected PUBLIC KEY PEM block, got %+v", block)
	}
	if _, err := x509.ParsePKIXPublicKey(block.Bytes); err != nil {
		t.Errorf("public key should parse as PKIX: %v", err)
	}
}

func TestGenerateKeyPair_UnwritablePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "no", "such", "dir")
	if err := GenerateKeyPair(filepath.Join(missing, "private.pem"), filepath.Join(dir, "public.pem")); err == nil {
		t.Error("expected error for unwritable private key path")
	}
	if err := GenerateKeyPair(filepath.Join(dir, "private.pem"), filepath.Join(missing, "public.pem")); err == nil {
		t.Error("expected error for unwritable public key path")
	}
}
