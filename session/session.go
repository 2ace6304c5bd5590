// Package session keeps the identity attached to submissions: a username, a
// device id and a bearer token. The pad only reads it.
package session

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ubfsw/digitpad/log"
)

// Session is a snapshot of the stored identity. Empty fields are unknown.
type Session struct {
	Username  string `yaml:"username,omitempty"`
	DeviceID  string `yaml:"device_id,omitempty"`
	AuthToken string `yaml:"auth_token,omitempty"`
}

// LoggedIn mirrors the login gate: a username and a token.
func (s Session) LoggedIn() bool {
	return s.Username != "" && s.AuthToken != ""
}

// Provider supplies the current session at submission time.
type Provider interface {
	Session() Session
}

// Static is a fixed session, for tools and tests.
type Static Session

func (s Static) Session() Session {
	return Session(s)
}

// Store is a yaml file backed Provider.
type Store struct {
	path string

	mu      sync.Mutex
	current Session
}

// Open loads the session file at path, creating a device id on first use.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &s.current); err != nil {
			log.Warning.Printf("session file %s is corrupt, starting over: %v", path, err)
			s.current = Session{}
		}
	case os.IsNotExist(err):
		log.Trace.Printf("no session at %s", path)
	default:
		return nil, errors.Wrapf(err, "can't read session %s", path)
	}

	if s.current.DeviceID == "" {
		s.current.DeviceID = uuid.New().String()
		if err := s.save(); err != nil {
			return nil, err
		}
		log.Trace.Printf("new device id %s", s.current.DeviceID)
	}
	return s, nil
}

func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Login records a username and an optional token obtained elsewhere.
func (s *Store) Login(username, token string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}
	if token != "" {
		if exp, ok := TokenExpiry(token); ok && exp.Before(time.Now()) {
			log.Warning.Printf("token expired at %s", exp.Format(time.RFC3339))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Username = username
	s.current.AuthToken = token
	return s.save()
}

// Logout forgets the user and token. The device id is kept so the device
// stays linked.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Username = ""
	s.current.AuthToken = ""
	return s.save()
}

func (s *Store) save() error {
	b, err := yaml.Marshal(s.current)
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(s.path, b, 0600), "can't write session %s", s.path)
}

// TokenExpiry reads the exp claim of a JWT bearer token without verifying
// it. Opaque tokens report ok=false.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims := &jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.ExpiresAt, 0), true
}

// TokenSubject returns the sub claim of a JWT bearer token, if any.
func TokenSubject(token string) string {
	claims := &jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return ""
	}
	return claims.Subject
}
