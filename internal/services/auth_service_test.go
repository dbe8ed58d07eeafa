package services_test

import (
	"errors"
	"testing"

	"pawmart/internal/repos"
	"pawmart/internal/services"
)

func authFixture(t *testing.T) *services.AuthService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return &services.AuthService{Users: repos.NewUserRepo(db)}
}

func TestLogin(t *testing.T) {
	auth := authFixture(t)

	u, err := auth.Login("sid-1", "admin@pawmart.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if !u.IsAdmin() {
		t.Fatalf("seeded admin must carry the admin role: %+v", u)
	}
	if u.Hash != "" {
		t.Fatal("login must not return the password hash")
	}

	// the session is bound and resolvable afterwards
	cur, err := auth.CurrentUser("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if cur.ID != u.ID || cur.Hash != "" {
		t.Fatalf("unexpected session user: %+v", cur)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	auth := authFixture(t)

	if _, err := auth.Login("sid-1", "admin@pawmart.test", "wrong"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("wrong password: got %v", err)
	}
	// unknown accounts fail the same way as bad passwords
	if _, err := auth.Login("sid-1", "nobody@pawmart.test", "Passw0rd!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("unknown email: got %v", err)
	}
	if _, err := auth.CurrentUser("sid-1"); err == nil {
		t.Fatal("failed logins must not bind the session")
	}
}

func TestLogout(t *testing.T) {
	auth := authFixture(t)

	if _, err := auth.Login("sid-1", "alice@pawmart.test", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	if err := auth.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.CurrentUser("sid-1"); err == nil {
		t.Fatal("logged-out session must not resolve a user")
	}
}
