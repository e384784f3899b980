package report

import (
	"context"
	"net"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/libs/serializer"
	"github.com/hyp3rd/dailystats/internal/sentinel"
)

// RedisPublisher stores benchmark reports in Redis: the latest report of a
// strategy under `<prefix>:<strategy>:latest` and a capped history list
// under `<prefix>:<strategy>:history`, newest first.
type RedisPublisher struct {
	client     redis.UniversalClient
	prefix     string
	history    int64
	serializer serializer.ISerializer
}

// PublisherOption configures a RedisPublisher.
type PublisherOption func(*RedisPublisher)

// WithKeyPrefix sets the key prefix.
func WithKeyPrefix(prefix string) PublisherOption {
	return func(p *RedisPublisher) { p.prefix = prefix }
}

// WithHistoryLength caps the history list.
func WithHistoryLength(n int64) PublisherOption {
	return func(p *RedisPublisher) {
		if n > 0 {
			p.history = n
		}
	}
}

// WithSerializer sets the report encoding.
func WithSerializer(s serializer.ISerializer) PublisherOption {
	return func(p *RedisPublisher) { p.serializer = s }
}

// NewRedisClient returns a client for addr configured with the package timeouts.
func NewRedisClient(addr string) (*redis.Client, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "redis address")
	}

	return redis.NewClient(&redis.Options{
		Addr: addr,
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{
				Timeout: constants.RedisDialTimeout,
			}

			return dialer.DialContext(ctx, network, addr)
		},
		MaxRetries:   constants.RedisClientMaxRetries,
		DialTimeout:  constants.RedisDialTimeout,
		ReadTimeout:  constants.RedisClientReadTimeout,
		WriteTimeout: constants.RedisClientWriteTimeout,
	}), nil
}

// NewRedisPublisher wraps client. Reports are JSON encoded unless
// WithSerializer says otherwise.
func NewRedisPublisher(client redis.UniversalClient, opts ...PublisherOption) (*RedisPublisher, error) {
	if client == nil {
		return nil, sentinel.ErrNilClient
	}

	p := &RedisPublisher{
		client:     client,
		prefix:     constants.RedisKeyPrefix,
		history:    constants.RedisHistoryLength,
		serializer: &serializer.JSONSerializer{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// LatestKey returns the key holding the latest report of strategy.
func (p *RedisPublisher) LatestKey(strategy string) string {
	return p.prefix + ":" + strategy + ":latest"
}

// HistoryKey returns the key of the report history of strategy.
func (p *RedisPublisher) HistoryKey(strategy string) string {
	return p.prefix + ":" + strategy + ":history"
}

// Publish stores rep atomically as latest report and history head.
func (p *RedisPublisher) Publish(ctx context.Context, rep *Report) error {
	data, err := p.serializer.Marshal(rep)
	if err != nil {
		return err
	}

	pipe := p.client.TxPipeline()
	pipe.Set(ctx, p.LatestKey(rep.Strategy), data, 0)
	pipe.LPush(ctx, p.HistoryKey(rep.Strategy), data)
	pipe.LTrim(ctx, p.HistoryKey(rep.Strategy), 0, p.history-1)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return ewrap.Wrap(err, "publish report")
	}

	return nil
}

// Latest reads back the latest report of strategy.
func (p *RedisPublisher) Latest(ctx context.Context, strategy string) (*Report, error) {
	data, err := p.client.Get(ctx, p.LatestKey(strategy)).Bytes()
	if err != nil {
		return nil, ewrap.Wrap(err, "read latest report")
	}

	var rep Report

	err = p.serializer.Unmarshal(data, &rep)
	if err != nil {
		return nil, err
	}

	return &rep, nil
}
