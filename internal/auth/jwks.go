package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

// ErrKeySetUnavailable indicates the JWKS could not be loaded at all.
var ErrKeySetUnavailable = errors.New("auth: key set unavailable")

// DocumentStore shares the raw JWKS document between replicas.
type DocumentStore interface {
	Load(ctx context.Context) ([]byte, bool, error)
	Save(ctx context.Context, doc []byte, ttl time.Duration) error
}

// KeySet caches the identity provider's RSA signing keys by key ID.
// It is safe for concurrent use.
type KeySet struct {
	uri        string
	httpClient *http.Client
	ttl        time.Duration
	store      DocumentStore

	// MinRefreshInterval bounds how often an unknown kid may force a fetch
	// from the identity provider.
	MinRefreshInterval time.Duration
	// OnRefresh, when set, observes the outcome of every load.
	OnRefresh func(error)

	group singleflight.Group

	mu         sync.RWMutex
	keys       map[string]*rsa.PublicKey
	fetched    time.Time
	lastOrigin time.Time
}

// NewKeySet creates a key set reading from uri. store may be nil.
func NewKeySet(uri string, client *http.Client, ttl time.Duration, store DocumentStore) *KeySet {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &KeySet{
		uri:                uri,
		httpClient:         client,
		ttl:                ttl,
		store:              store,
		MinRefreshInterval: 30 * time.Second,
		keys:               make(map[string]*rsa.PublicKey),
	}
}

// Key returns the public key for kid. Unknown IDs yield ErrKeyNotFound; a key
// set that cannot be loaded yields an error wrapping ErrKeySetUnavailable.
func (k *KeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	key, ok, fresh := k.lookup(kid)
	if ok && fresh {
		return key, nil
	}

	if !fresh {
		if err := k.refresh(ctx, false); err != nil {
			if ok {
				return key, nil
			}
			return nil, err
		}
		if key, ok, _ = k.lookup(kid); ok {
			return key, nil
		}
	}

	// Possibly rotated: go to the origin once, bypassing the shared store.
	if k.originAge() >= k.MinRefreshInterval {
		if err := k.refresh(ctx, true); err != nil {
			return nil, err
		}
		if key, ok, _ = k.lookup(kid); ok {
			return key, nil
		}
	}
	return nil, ErrKeyNotFound
}

func (k *KeySet) lookup(kid string) (*rsa.PublicKey, bool, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	key, ok := k.keys[kid]
	fresh := !k.fetched.IsZero() && time.Since(k.fetched) < k.ttl
	return key, ok, fresh
}

func (k *KeySet) originAge() time.Duration {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.lastOrigin.IsZero() {
		return time.Duration(1<<63 - 1)
	}
	return time.Since(k.lastOrigin)
}

// refresh reloads the key set, collapsing concurrent callers into one load.
func (k *KeySet) refresh(ctx context.Context, fromOrigin bool) error {
	flight := "shared"
	if fromOrigin {
		flight = "origin"
	}
	loadCtx := context.WithoutCancel(ctx)
	result := k.group.DoChan(flight, func() (interface{}, error) {
		err := k.load(loadCtx, fromOrigin)
		if k.OnRefresh != nil {
			k.OnRefresh(err)
		}
		return nil, err
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-result:
		return res.Err
	}
}

func (k *KeySet) load(ctx context.Context, fromOrigin bool) error {
	if k.store != nil && !fromOrigin {
		doc, found, err := k.store.Load(ctx)
		if err == nil && found {
			if keys, err := parseKeySet(doc); err == nil {
				k.install(keys, false)
				return nil
			}
		}
	}

	doc, err := k.fetch(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}
	keys, err := parseKeySet(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}
	k.install(keys, true)
	if k.store != nil {
		// Sharing is best effort.
		_ = k.store.Save(ctx, doc, k.ttl)
	}
	return nil
}

func (k *KeySet) install(keys map[string]*rsa.PublicKey, fromOrigin bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys = keys
	k.fetched = time.Now()
	if fromOrigin {
		k.lastOrigin = k.fetched
	}
}

func (k *KeySet) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.uri, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS fetch failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

type jsonWebKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// parseKeySet decodes the RSA signing keys of a JWKS document.
func parseKeySet(doc []byte) (map[string]*rsa.PublicKey, error) {
	var jwks struct {
		Keys []jsonWebKey `json:"keys"`
	}
	if err := json.Unmarshal(doc, &jwks); err != nil {
		return nil, fmt.Errorf("decode JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(jwks.Keys))
	for _, jwk := range jwks.Keys {
		if jwk.Kty != "RSA" || jwk.Kid == "" || (jwk.Use != "" && jwk.Use != "sig") {
			continue
		}
		key, err := rsaPublicKey(jwk.N, jwk.E)
		if err != nil {
			continue
		}
		keys[jwk.Kid] = key
	}
	return keys, nil
}

func rsaPublicKey(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := decodeSegment(n)
	if err != nil {
		return nil, err
	}
	eBytes, err := decodeSegment(e)
	if err != nil {
		return nil, err
	}
	if len(nBytes) == 0 || len(eBytes) == 0 || len(eBytes) > 4 {
		return nil, errors.New("invalid RSA key parameters")
	}
	exp := 0
	for _, b := range eBytes {
		exp = exp<<8 | int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: exp}, nil
}

func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
