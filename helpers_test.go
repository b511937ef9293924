package goSession

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"

	"github.com/Kade-Lor/goSession/session"
)

type mapDirectory struct {
	users map[string]Principal
	err   error
}

func (d *mapDirectory) FindByID(_ context.Context, id string) (*Principal, error) {
	if d.err != nil {
		return nil, d.err
	}
	p, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	out := p
	return &out, nil
}

type engineFixture struct {
	engine *Engine
	config Config
	store  *session.MemoryStore
	dir    *mapDirectory
}

func newEdConfig(t testing.TB) Config {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	cfg := defaultConfig()
	cfg.JWT.AccessTTL = time.Minute
	cfg.JWT.RefreshTTL = time.Hour
	cfg.JWT.PrivateKey = priv
	cfg.JWT.PublicKey = pub
	return cfg
}

func newTestEngine(t testing.TB, mutate ...func(*Config, *Builder)) *engineFixture {
	t.Helper()

	cfg := newEdConfig(t)
	store := session.NewMemoryStore()
	dir := &mapDirectory{users: map[string]Principal{
		"u1": {ID: "u1", Email: "u1@example.com"},
		"u2": {ID: "u2", Email: "u2@example.com"},
	}}

	builder := New().
		WithStore(store).
		WithUserDirectory(dir)

	for _, m := range mutate {
		m(&cfg, builder)
	}
	builder.WithConfig(cfg)

	engine, err := builder.Build()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	t.Cleanup(engine.Close)

	return &engineFixture{
		engine: engine,
		config: cfg,
		store:  store,
		dir:    dir,
	}
}

// signRefresh mints a refresh credential with arbitrary claims under the
// fixture's own key, for forging expired or incomplete payloads that the
// public signing API refuses to produce.
func (f *engineFixture) signRefresh(t testing.TB, sid, uid string, expiresAt time.Time) string {
	t.Helper()

	claims := gjwt.MapClaims{
		"sid": sid,
		"uid": uid,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	}
	token := gjwt.NewWithClaims(gjwt.SigningMethodEdDSA, claims)
	signed, err := token.SignedString(ed25519.PrivateKey(f.config.JWT.PrivateKey))
	if err != nil {
		t.Fatalf("sign refresh: %v", err)
	}
	return signed
}

func (f *engineFixture) issue(t testing.TB, userID string) TokenPair {
	t.Helper()

	pair, err := f.engine.IssuePair(context.Background(), Principal{ID: userID}, session.Metadata{})
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}
	return pair
}
