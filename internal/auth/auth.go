// Package auth supplies the user identity that namespaces uploaded drawings.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/mail"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hack-pad/hackpadfs"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownUser        = errors.New("no account for email")
	ErrUserExists         = errors.New("user already exists")
	ErrWeakPassword       = errors.New("password too short")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// User is an authenticated identity.
type User struct {
	ID    string
	Email string
}

// Service signs users up and in.
type Service interface {
	SignUp(ctx context.Context, email, password string) (User, error)
	SignIn(ctx context.Context, email, password string) (User, error)
}

type account struct {
	user User
	hash []byte
}

// record is the stored form of an account.
type record struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Hash  []byte `json:"hash"`
}

// MemoryService keeps accounts in memory with bcrypt password hashes. A service made
// by OpenFileService also writes every new account to its file.
type MemoryService struct {
	accounts map[string]account // by lower-cased email
	cost     int
	mu       sync.RWMutex

	fs   hackpadfs.FS
	file string
}

var _ Service = (*MemoryService)(nil)

// NewMemoryService returns an empty service. A cost of 0 uses bcrypt.DefaultCost.
func NewMemoryService(cost int) *MemoryService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &MemoryService{accounts: make(map[string]account), cost: cost}
}

// OpenFileService loads the accounts stored at name inside fsys. A missing file
// starts empty and is created by the first SignUp.
func OpenFileService(fsys hackpadfs.FS, name string, cost int) (*MemoryService, error) {
	s := NewMemoryService(cost)
	s.fs, s.file = fsys, name

	data, err := hackpadfs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode accounts %s: %w", name, err)
	}
	for _, r := range records {
		key, err := normalizeEmail(r.Email)
		if err != nil || len(r.Hash) == 0 || r.ID == "" {
			return nil, fmt.Errorf("decode accounts %s: bad record for %q", name, r.Email)
		}
		s.accounts[key] = account{user: User{ID: r.ID, Email: key}, hash: r.Hash}
	}
	return s, nil
}

// save writes every account to the service file. Callers hold s.mu.
func (s *MemoryService) save() error {
	if s.fs == nil {
		return nil
	}
	records := make([]record, 0, len(s.accounts))
	for _, acc := range s.accounts {
		records = append(records, record{ID: acc.user.ID, Email: acc.user.Email, Hash: acc.hash})
	}
	slices.SortFunc(records, func(a, b record) int { return strings.Compare(a.Email, b.Email) })
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	f, err := hackpadfs.OpenFile(s.fs, s.file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open accounts: %w", err)
	}
	var werr error
	if w, ok := f.(io.Writer); ok {
		_, werr = w.Write(data)
	} else {
		werr = hackpadfs.ErrNotImplemented
	}
	if err := errors.Join(werr, f.Close()); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}
	return nil
}

func (s *MemoryService) SignUp(ctx context.Context, email, password string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	key, err := normalizeEmail(email)
	if err != nil {
		return User{}, err
	}
	if len(password) < MinPasswordLength {
		return User{}, fmt.Errorf("%w: need %d characters", ErrWeakPassword, MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[key]; ok {
		return User{}, fmt.Errorf("%w: %s", ErrUserExists, key)
	}
	u := User{ID: userID(key), Email: key}
	s.accounts[key] = account{user: u, hash: hash}
	if err := s.save(); err != nil {
		delete(s.accounts, key)
		return User{}, err
	}
	return u, nil
}

func (s *MemoryService) SignIn(ctx context.Context, email, password string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	key, err := normalizeEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	s.mu.RLock()
	acc, ok := s.accounts[key]
	s.mu.RUnlock()
	if !ok {
		return User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, ErrUnknownUser)
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return acc.user, nil
}

func normalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCredentials, email)
	}
	return strings.ToLower(addr.Address), nil
}

// userID derives the ID from the email, so re-creating an account finds the same
// saved drawings.
func userID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
}

// Guest returns a stable anonymous identity for offline use.
func Guest() User {
	return User{ID: "guest", Email: ""}
}
