package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// DefaultBucket is the JetStream KV bucket used when none is configured.
const DefaultBucket = "gilead_review"

// NATSKV stores values in a NATS JetStream KV bucket.
type NATSKV struct {
	nc *nats.Conn
	kv jetstream.KeyValue
}

var _ KV = (*NATSKV)(nil)

// NewNATSKV wraps an existing KV bucket. Close on the result does not close
// any connection.
func NewNATSKV(kv jetstream.KeyValue) *NATSKV {
	return &NATSKV{kv: kv}
}

// DialNATS connects to NATS and opens (or creates) the KV bucket.
func DialNATS(ctx context.Context, url, bucket string) (*NATSKV, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "Flashcard scheduling state and review progress",
		History:     1,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("opening KV bucket %s: %w", bucket, err)
	}

	return &NATSKV{nc: nc, kv: kv}, nil
}

func (s *NATSKV) Get(ctx context.Context, key string) (string, error) {
	entry, err := s.kv.Get(ctx, encodeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
	}
	return string(entry.Value()), nil
}

func (s *NATSKV) Put(ctx context.Context, key, value string) error {
	if _, err := s.kv.PutString(ctx, encodeKey(key), value); err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (s *NATSKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	raw, err := s.kv.Keys(ctx)
	if err != nil {
		// An empty bucket reports ErrNoKeysFound.
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: keys: %v", ErrUnavailable, err)
	}
	var keys []string
	for _, k := range raw {
		key, ok := decodeKey(k)
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *NATSKV) Close() error {
	if s.nc != nil {
		s.nc.Close()
	}
	return nil
}

// encodeKey maps an arbitrary key onto the NATS KV key alphabet
// [-/_.a-zA-Z0-9=]. Bytes outside it, and '=' itself, become =XX. Only the
// first dot, the namespace separator, stays literal; later dots are escaped
// so an ID like "week1." or "a..b" never yields an empty token.
func encodeKey(key string) string {
	var b strings.Builder
	sep := strings.IndexByte(key, '.')
	for i := 0; i < len(key); i++ {
		c := key[i]
		if isKeyByte(c) && (c != '.' || i == sep && sep > 0 && sep < len(key)-1) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "=%02X", c)
	}
	return b.String()
}

func decodeKey(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", false
		}
		c, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return "", false
		}
		b.WriteByte(byte(c))
		i += 2
	}
	return b.String(), true
}

func isKeyByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '/':
		return true
	}
	return false
}
