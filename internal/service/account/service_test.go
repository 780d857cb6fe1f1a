package account

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

type stubAccountRepo struct {
	created   *domain.Account
	createErr error
	byName    *domain.Account
	byNameErr error
	byID      *domain.Account
	byIDErr   error
	lastName  string
}

func (s *stubAccountRepo) Create(_ context.Context, a domain.Account) (*domain.Account, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	out := a
	out.ID = "acct-id"
	out.StoreCreditCents = 1500
	return &out, nil
}

func (s *stubAccountRepo) GetByID(_ context.Context, _ string) (*domain.Account, error) {
	return s.byID, s.byIDErr
}

func (s *stubAccountRepo) GetByName(_ context.Context, name string) (*domain.Account, error) {
	s.lastName = name
	return s.byName, s.byNameErr
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (m *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := m.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	m.tokens[t.Token] = t
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := m.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tokens, token)
	return nil
}

func TestSignupValidation(t *testing.T) {
	svc := New(&stubAccountRepo{}, newMemTokenRepo())

	_, err := svc.Signup(context.Background(), SignupInput{Name: "  ", Password: "Abcdefg1"})
	if err == nil || err.Error() != "name required" {
		t.Fatalf("expected name error, got %v", err)
	}

	_, err = svc.Signup(context.Background(), SignupInput{Name: "alice", Password: "short"})
	if err == nil || err.Error() != "password too short" {
		t.Fatalf("expected password error, got %v", err)
	}
}

func TestSignupHashesPassword(t *testing.T) {
	svc := New(&stubAccountRepo{}, newMemTokenRepo())
	a, err := svc.Signup(context.Background(), SignupInput{Name: "alice", Password: "Abcdefg1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.PasswordHash == "Abcdefg1" || a.PasswordHash == "" {
		t.Fatalf("password not hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("Abcdefg1")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if a.StoreCreditCents != 1500 {
		t.Fatalf("expected default credit 1500, got %d", a.StoreCreditCents)
	}
}

func TestSignupDuplicateName(t *testing.T) {
	svc := New(&stubAccountRepo{createErr: domain.ErrAlreadyExists}, newMemTokenRepo())
	_, err := svc.Signup(context.Background(), SignupInput{Name: "alice", Password: "Abcdefg1"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := New(&stubAccountRepo{byNameErr: domain.ErrNotFound}, newMemTokenRepo())
	_, _, _, err := svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("RightPass1"), bcrypt.DefaultCost)
	svc = New(&stubAccountRepo{byName: &domain.Account{ID: "a1", Name: "alice", PasswordHash: string(hash)}}, newMemTokenRepo())
	_, _, _, err = svc.Login(context.Background(), "alice", "WrongPass1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginIssuesUsableAccessToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("RightPass1"), bcrypt.DefaultCost)
	acct := &domain.Account{ID: "a1", Name: "alice", PasswordHash: string(hash), StoreCreditCents: 1500}
	tokens := newMemTokenRepo()
	svc := New(&stubAccountRepo{byName: acct, byID: acct}, tokens)

	got, access, refresh, err := svc.Login(context.Background(), "alice", "RightPass1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "a1" || access == "" || refresh == "" || access == refresh {
		t.Fatalf("unexpected login result: %+v %q %q", got, access, refresh)
	}

	fetched, err := svc.LookupByToken(context.Background(), access)
	if err != nil {
		t.Fatalf("lookup by access token: %v", err)
	}
	if fetched.ID != "a1" {
		t.Fatalf("unexpected account: %+v", fetched)
	}

	// Refresh tokens must not authenticate requests.
	if _, err := svc.LookupByToken(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for refresh, got %v", err)
	}
}

func TestLookupByTokenUnknown(t *testing.T) {
	svc := New(&stubAccountRepo{}, newMemTokenRepo())
	_, err := svc.LookupByToken(context.Background(), "bogus")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestNameAvailable(t *testing.T) {
	repo := &stubAccountRepo{byNameErr: domain.ErrNotFound}
	svc := New(repo, newMemTokenRepo())
	ok, err := svc.NameAvailable(context.Background(), "fresh")
	if err != nil || !ok {
		t.Fatalf("expected available, got ok=%v err=%v", ok, err)
	}

	repo = &stubAccountRepo{byName: &domain.Account{ID: "a1", Name: "taken"}}
	svc = New(repo, newMemTokenRepo())
	ok, err = svc.NameAvailable(context.Background(), "taken")
	if err != nil || ok {
		t.Fatalf("expected taken, got ok=%v err=%v", ok, err)
	}
}
