// Copyright 2026 TrustPin
// SPDX-License-Identifier: MIT

package configstore

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/trustpin-cloud/trustpin-go/pkg/jws"
	"github.com/trustpin-cloud/trustpin-go/pkg/policy"
)

// flightKey coalesces all concurrent fetches for a store; a store serves a
// single project, so one key suffices.
const flightKey = "policy"

// cacheEntry is a verified policy and the monotonic instant it was fetched.
type cacheEntry struct {
	policy    *policy.Policy
	fetchedAt time.Time
}

// Store owns the credentials, the policy cache, and the in-flight fetch
// handle. All mutable state is guarded by mu; the fetch itself runs outside
// the lock and is shared across concurrent callers via singleflight.
type Store struct {
	cfg    Config
	logger *slog.Logger

	mu    sync.Mutex
	creds *Credentials
	cache *cacheEntry
	gen   uint64

	group singleflight.Group

	// now and sleep are test seams; production stores use the real clock.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewStore creates a Store with the given configuration. A nil cfg uses the
// defaults.
func NewStore(cfg *Config) *Store {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	c = c.withDefaults()
	return &Store{
		cfg:    c,
		logger: c.Logger.With("component", "configstore"),
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// SetCredentials validates and installs project credentials. Whitespace is
// trimmed; empty fields and a public key that is not valid base64 are
// rejected. Installing credentials invalidates the cache and detaches any
// in-flight fetch so later callers observe only the new project.
func (s *Store) SetCredentials(organizationID, projectID, publicKeyB64 string, mode Mode) error {
	organizationID = strings.TrimSpace(organizationID)
	projectID = strings.TrimSpace(projectID)
	publicKeyB64 = strings.TrimSpace(publicKeyB64)

	if organizationID == "" || projectID == "" || publicKeyB64 == "" {
		return fmt.Errorf("%w: organization, project and public key are required", ErrInvalidCredentials)
	}

	keyDER, err := base64.StdEncoding.DecodeString(publicKeyB64)
	if err != nil {
		return fmt.Errorf("%w: public key is not valid base64: %w", ErrInvalidCredentials, err)
	}

	switch mode {
	case ModeStrict, ModePermissive:
	case "":
		mode = ModeStrict
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidCredentials, mode)
	}

	s.mu.Lock()
	s.creds = &Credentials{
		OrganizationID: organizationID,
		ProjectID:      projectID,
		PublicKeyDER:   keyDER,
		Mode:           mode,
	}
	s.cache = nil
	s.gen++
	s.mu.Unlock()
	s.group.Forget(flightKey)

	s.logger.Debug("credentials configured", "organization", organizationID, "project", projectID, "mode", string(mode))
	return nil
}

// Mode returns the configured pinning mode.
func (s *Store) Mode() (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return "", ErrNoCredentials
	}
	return s.creds.Mode, nil
}

// Reset clears credentials, cache and any in-flight fetch. Test hook.
func (s *Store) Reset() {
	s.mu.Lock()
	s.creds = nil
	s.cache = nil
	s.gen++
	s.mu.Unlock()
	s.group.Forget(flightKey)
}

// GetPolicy returns the current pinning policy, fetching it if the cache is
// empty or past its TTL. Concurrent callers on a cold cache share a single
// fetch attempt sequence and receive the same outcome. Cancelling ctx
// abandons the wait without cancelling the shared fetch; other waiters may
// still need its result.
func (s *Store) GetPolicy(ctx context.Context) (*policy.Policy, error) {
	s.mu.Lock()
	if s.creds == nil {
		s.mu.Unlock()
		return nil, ErrNoCredentials
	}
	if s.cache != nil && s.now().Sub(s.cache.fetchedAt) < s.cfg.CacheTTL {
		p := s.cache.policy
		s.mu.Unlock()
		return p, nil
	}
	creds := *s.creds
	gen := s.gen
	s.mu.Unlock()

	ch := s.group.DoChan(flightKey, func() (any, error) {
		return s.fetch(creds, gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*policy.Policy), nil
	}
}

// fetch runs one attempt cycle: download, verify, decode, cache. Network and
// HTTP-status failures are retried up to MaxAttempts with a fixed delay;
// envelope, signature and payload failures abort immediately. When every
// attempt fails, a cache entry no older than StaleMaxAge is served as a last
// resort.
//
// The cycle runs detached from any caller's context so that a cancelled
// waiter does not starve the others; each attempt is bounded by HTTPTimeout.
func (s *Store) fetch(creds Credentials, gen uint64) (*policy.Policy, error) {
	// Re-check under the lock: a fetch that raced with a just-completed one
	// serves the freshly filled cache instead of issuing another request.
	s.mu.Lock()
	if s.gen == gen && s.cache != nil && s.now().Sub(s.cache.fetchedAt) < s.cfg.CacheTTL {
		p := s.cache.policy
		s.mu.Unlock()
		return p, nil
	}
	s.mu.Unlock()

	url := fmt.Sprintf("%s/%s/%s/jws.b64",
		strings.TrimRight(s.cfg.BaseURL, "/"), creds.OrganizationID, creds.ProjectID)

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := s.sleep(context.Background(), s.cfg.RetryDelay); err != nil {
				lastErr = err
				break
			}
			s.logger.Debug("retrying policy fetch", "attempt", attempt, "url", url)
		}

		token, err := s.download(url)
		if err != nil {
			s.logger.Error("policy download failed", "attempt", attempt, "error", err)
			lastErr = err
			continue
		}

		pol, err := s.validate(token, creds.PublicKeyDER)
		if err != nil {
			// Integrity and format failures are never transient.
			s.logger.Error("policy validation failed", "error", err)
			return nil, err
		}

		s.storeCache(pol, gen)
		s.logger.Debug("policy refreshed", "domains", len(pol.Domains), "version", pol.Version)
		return pol, nil
	}

	if stale := s.staleEntry(); stale != nil {
		s.logger.Info("serving stale pinning policy after fetch failure",
			"age", s.now().Sub(stale.fetchedAt).Round(time.Second), "error", lastErr)
		return stale.policy, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrFetchFailed, lastErr)
}

// download performs a single HTTP GET with an ephemeral transport: no cookie
// jar, no shared connection cache, keep-alives disabled.
func (s *Store) download(url string) (string, error) {
	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DisableKeepAlives: true,
	}
	defer transport.CloseIdleConnections()

	client := &http.Client{
		Timeout:   s.cfg.HTTPTimeout,
		Transport: transport,
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTPTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: server returned %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	token := strings.TrimSpace(string(body))
	if token == "" {
		return "", fmt.Errorf("%w: empty response body", ErrFetchFailed)
	}
	return token, nil
}

// validate parses the envelope, verifies the ES256 signature over the
// header.payload bytes with the project public key, and decodes the payload.
func (s *Store) validate(token string, publicKeyDER []byte) (*policy.Policy, error) {
	env, err := jws.Parse(token)
	if err != nil {
		return nil, err
	}
	pub, err := jws.ParsePublicKey(publicKeyDER)
	if err != nil {
		return nil, err
	}
	if err := jws.VerifyES256(pub, env.SigningInput, env.Signature); err != nil {
		return nil, err
	}
	return policy.Decode(env.Payload)
}

// storeCache installs a freshly verified policy unless the credentials
// changed while the fetch was in flight.
func (s *Store) storeCache(pol *policy.Policy, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.cache = &cacheEntry{policy: pol, fetchedAt: s.now()}
	}
}

// staleEntry returns the cache entry if it is still within StaleMaxAge.
func (s *Store) staleEntry() *cacheEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache != nil && s.now().Sub(s.cache.fetchedAt) <= s.cfg.StaleMaxAge {
		return s.cache
	}
	return nil
}

// sleepContext waits for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
