package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/OliveiraNt/netbind/internal/config"
	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl"
	"github.com/twmb/franz-go/pkg/sasl/aws"
	"github.com/twmb/franz-go/pkg/sasl/plain"
	"github.com/twmb/franz-go/pkg/sasl/scram"
)

// NewClient creates a franz-go client for the change feed cluster. Extra
// options are appended after the ones derived from cfg.
func NewClient(cfg config.ClusterConfig, extra ...kgo.Opt) (*kgo.Client, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	logCertificate(cfg)
	return kgo.NewClient(append(opts, extra...)...)
}

func clientOptions(cfg config.ClusterConfig) ([]kgo.Opt, error) {
	var opts []kgo.Opt
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}
	if len(cfg.Brokers) > 0 {
		opts = append(opts, kgo.SeedBrokers(cfg.Brokers...))
	}
	if cfg.TLS != nil && cfg.TLS.Enabled {
		tlsCfg, err := buildTLSConfig(cfg.TLS)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kgo.DialTLSConfig(tlsCfg))
	}
	if cfg.SASL != nil && cfg.SASL.Mechanism != "" {
		mech, err := buildSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kgo.SASL(mech))
	}
	if cfg.AWS != nil && cfg.AWS.IAM {
		if mech := buildAWSMechanism(cfg.AWS); mech != nil {
			opts = append(opts, kgo.SASL(mech))
		} else {
			utils.Logger.Warn("aws iam enabled but no credentials found in env")
		}
	}
	return opts, nil
}

func logCertificate(cfg config.ClusterConfig) {
	info, err := cfg.CertificateInfo()
	if err != nil {
		utils.Logger.Warn("cannot read client certificate", "err", err)
		return
	}
	if info == nil {
		return
	}
	switch info.Status {
	case "expired", "critical":
		utils.Logger.Error("kafka client certificate", "status", info.Status, "not_after", info.NotAfter, "days", info.DaysToExpiry)
	case "warning":
		utils.Logger.Warn("kafka client certificate", "status", info.Status, "not_after", info.NotAfter, "days", info.DaysToExpiry)
	default:
		utils.Logger.Debug("kafka client certificate", "status", info.Status, "not_after", info.NotAfter)
	}
}

// buildTLSConfig reads the CA and client key pair named in t.
func buildTLSConfig(t *config.TLSConfig) (*tls.Config, error) {
	rootCAs := x509.NewCertPool()
	if t.CAFile != "" {
		b, err := os.ReadFile(t.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read ca file: %w", err)
		}
		if !rootCAs.AppendCertsFromPEM(b) {
			return nil, fmt.Errorf("no certificates in ca file %s", t.CAFile)
		}
	}

	cfg := &tls.Config{
		RootCAs:            rootCAs,
		InsecureSkipVerify: t.InsecureSkipVerify,
	}
	if t.CertFile != "" && t.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client key pair: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}

func envOr(name, fallback string) string {
	if name != "" {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return fallback
}

func buildSASLMechanism(s *config.SASLConfig) (sasl.Mechanism, error) {
	user := envOr(s.UsernameEnv, s.Username)
	pass := envOr(s.PasswordEnv, s.Password)

	switch s.Mechanism {
	case "PLAIN", "plain":
		return plain.Auth{User: user, Pass: pass}.AsMechanism(), nil
	case "SCRAM-SHA-256", "SCRAM-SHA256", "scram-sha-256":
		return scram.Auth{User: user, Pass: pass}.AsSha256Mechanism(), nil
	case "SCRAM-SHA-512", "SCRAM-SHA512", "scram-sha-512":
		return scram.Auth{User: user, Pass: pass}.AsSha512Mechanism(), nil
	default:
		return nil, fmt.Errorf("unsupported sasl mechanism %q", s.Mechanism)
	}
}

// buildAWSMechanism returns nil when no credentials are available.
func buildAWSMechanism(a *config.AWSConfig) sasl.Mechanism {
	access := envOr(a.AccessKeyEnv, os.Getenv("AWS_ACCESS_KEY_ID"))
	secret := envOr(a.SecretKeyEnv, os.Getenv("AWS_SECRET_ACCESS_KEY"))
	session := envOr(a.SessionTokenEnv, os.Getenv("AWS_SESSION_TOKEN"))
	if access == "" || secret == "" {
		return nil
	}
	return aws.Auth{
		AccessKey:    access,
		SecretKey:    secret,
		SessionToken: session,
	}.AsManagedStreamingIAMMechanism()
}
