package services

import (
	"bytes"
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2/google"
)

const (
	securetokenCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	identityToolkitURL  = "https://identitytoolkit.googleapis.com/v1"
	identityScope       = "https://www.googleapis.com/auth/identitytoolkit"
	certCacheTTL        = time.Hour
)

var (
	ErrInvalidToken    = errors.New("invalid identity token")
	ErrEmailExists     = errors.New("user already exists")
	ErrIdentityMissing = errors.New("user not found in identity provider")
)

// Principal is the verified caller identity extracted from a bearer token.
type Principal struct {
	UID   string
	Email string
}

type IdentityService interface {
	VerifyToken(ctx context.Context, idToken string) (*Principal, error)
	CreateUser(ctx context.Context, email, password string) error
	DeleteUser(ctx context.Context, email string) error
	SendPasswordReset(ctx context.Context, email string) error
}

type firebaseIdentityService struct {
	apiKey    string
	projectID string

	// adminClient carries the service-account OAuth token for the
	// projects.accounts endpoints; plainClient is for the API-key paths.
	adminClient *http.Client
	plainClient *http.Client

	certMu      sync.Mutex
	certs       map[string]*rsa.PublicKey
	certsLoaded time.Time
}

func NewIdentityService(credentialsFile, apiKey, projectID string) (IdentityService, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity credentials: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, identityScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse identity credentials: %w", err)
	}

	return &firebaseIdentityService{
		apiKey:      apiKey,
		projectID:   projectID,
		adminClient: conf.Client(context.Background()),
		plainClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// VerifyToken implements IdentityService. The token is an RS256 ID token
// signed by the identity provider; the signing certs are fetched from
// Google and cached.
func (s *firebaseIdentityService) VerifyToken(ctx context.Context, idToken string) (*Principal, error) {
	token, err := jwt.Parse(idToken, s.keyFunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(s.projectID),
		jwt.WithIssuer("https://securetoken.google.com/"+s.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}

	return &Principal{UID: sub, Email: email}, nil
}

func (s *firebaseIdentityService) keyFunc(token *jwt.Token) (interface{}, error) {
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, fmt.Errorf("token has no key ID")
	}

	key, err := s.signingKey(kid)
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (s *firebaseIdentityService) signingKey(kid string) (*rsa.PublicKey, error) {
	s.certMu.Lock()
	defer s.certMu.Unlock()

	key, ok := s.certs[kid]
	if ok && time.Since(s.certsLoaded) < certCacheTTL {
		return key, nil
	}

	resp, err := s.plainClient.Get(securetokenCertsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signing certs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("signing certs fetch returned %d", resp.StatusCode)
	}

	var pems map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&pems); err != nil {
		return nil, fmt.Errorf("failed to decode signing certs: %w", err)
	}

	certs := make(map[string]*rsa.PublicKey, len(pems))
	for id, certPEM := range pems {
		pub, err := parseCertPublicKey(certPEM)
		if err != nil {
			continue
		}
		certs[id] = pub
	}
	s.certs = certs
	s.certsLoaded = time.Now()

	key, ok = s.certs[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

func parseCertPublicKey(certPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block in cert")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cert: %w", err)
	}
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("cert does not hold an RSA key")
	}
	return pub, nil
}

// CreateUser implements IdentityService.
func (s *firebaseIdentityService) CreateUser(ctx context.Context, email, password string) error {
	url := fmt.Sprintf("%s/projects/%s/accounts", identityToolkitURL, s.projectID)
	body := map[string]interface{}{
		"email":         email,
		"password":      password,
		"emailVerified": true,
	}

	resp, err := s.postJSON(ctx, s.adminClient, url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := readErrorMessage(resp.Body)
		if strings.Contains(msg, "EMAIL_EXISTS") || strings.Contains(msg, "DUPLICATE_EMAIL") {
			return ErrEmailExists
		}
		return fmt.Errorf("identity provider returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}

// DeleteUser implements IdentityService. Looks up the account by email
// first; a missing account maps to ErrIdentityMissing.
func (s *firebaseIdentityService) DeleteUser(ctx context.Context, email string) error {
	localID, err := s.lookupLocalID(ctx, email)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/projects/%s/accounts:delete", identityToolkitURL, s.projectID)
	resp, err := s.postJSON(ctx, s.adminClient, url, map[string]interface{}{"localId": localID})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity provider returned %d: %s", resp.StatusCode, readErrorMessage(resp.Body))
	}
	return nil
}

func (s *firebaseIdentityService) lookupLocalID(ctx context.Context, email string) (string, error) {
	url := fmt.Sprintf("%s/projects/%s/accounts:lookup", identityToolkitURL, s.projectID)
	resp, err := s.postJSON(ctx, s.adminClient, url, map[string]interface{}{"email": []string{email}})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity provider returned %d: %s", resp.StatusCode, readErrorMessage(resp.Body))
	}

	var result struct {
		Users []struct {
			LocalID string `json:"localId"`
		} `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode lookup response: %w", err)
	}
	if len(result.Users) == 0 {
		return "", ErrIdentityMissing
	}
	return result.Users[0].LocalID, nil
}

// SendPasswordReset implements IdentityService. The sendOobCode endpoint
// takes the web API key rather than the service-account token.
func (s *firebaseIdentityService) SendPasswordReset(ctx context.Context, email string) error {
	url := fmt.Sprintf("%s/accounts:sendOobCode?key=%s", identityToolkitURL, s.apiKey)
	body := map[string]interface{}{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}

	resp, err := s.postJSON(ctx, s.plainClient, url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send password reset email: status %d", resp.StatusCode)
	}
	return nil
}

func (s *firebaseIdentityService) postJSON(ctx context.Context, client *http.Client, url string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider call failed: %w", err)
	}
	return resp, nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	return string(data)
}
