package config

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"time"
)

// ClusterConfig is how the change feed reaches Kafka.
type ClusterConfig struct {
	Brokers  []string    `yaml:"brokers" json:"brokers"`
	ClientID string      `yaml:"client_id,omitempty" json:"client_id,omitempty"`
	TLS      *TLSConfig  `yaml:"tls,omitempty" json:"tls,omitempty"`
	SASL     *SASLConfig `yaml:"sasl,omitempty" json:"sasl,omitempty"`
	AWS      *AWSConfig  `yaml:"aws,omitempty" json:"aws,omitempty"`
}

type TLSConfig struct {
	Enabled            bool   `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	CAFile             string `yaml:"ca_file,omitempty" json:"ca_file,omitempty"`
	CertFile           string `yaml:"cert_file,omitempty" json:"cert_file,omitempty"`
	KeyFile            string `yaml:"key_file,omitempty" json:"key_file,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify,omitempty" json:"insecure_skip_verify,omitempty"`
}

// SASLConfig credentials may be inline or read from the named env vars.
type SASLConfig struct {
	Mechanism   string `yaml:"mechanism,omitempty" json:"mechanism,omitempty"` // PLAIN, SCRAM-SHA-256, SCRAM-SHA-512
	Username    string `yaml:"username,omitempty" json:"username,omitempty"`
	Password    string `yaml:"password,omitempty" json:"password,omitempty"`
	UsernameEnv string `yaml:"username_env,omitempty" json:"username_env,omitempty"`
	PasswordEnv string `yaml:"password_env,omitempty" json:"password_env,omitempty"`
}

// AWSConfig enables MSK IAM auth. Keys fall back to the standard AWS env vars.
type AWSConfig struct {
	IAM             bool   `yaml:"iam,omitempty" json:"iam,omitempty"`
	Region          string `yaml:"region,omitempty" json:"region,omitempty"`
	AccessKeyEnv    string `yaml:"access_key_env,omitempty" json:"access_key_env,omitempty"`
	SecretKeyEnv    string `yaml:"secret_key_env,omitempty" json:"secret_key_env,omitempty"`
	SessionTokenEnv string `yaml:"session_token_env,omitempty" json:"session_token_env,omitempty"`
}

// AuthType names the authentication in use, for logs.
func (c *ClusterConfig) AuthType() string {
	tls := c.TLS != nil && c.TLS.Enabled
	switch {
	case c.AWS != nil && c.AWS.IAM:
		return "AWS IAM"
	case c.SASL != nil && c.SASL.Mechanism != "" && tls:
		return "SASL/" + c.SASL.Mechanism + " + TLS"
	case c.SASL != nil && c.SASL.Mechanism != "":
		return "SASL/" + c.SASL.Mechanism
	case tls && c.TLS.CertFile != "" && c.TLS.KeyFile != "":
		return "mTLS"
	case tls:
		return "TLS"
	default:
		return "PLAINTEXT"
	}
}

// CertificateInfo is the validity window of a client certificate.
type CertificateInfo struct {
	NotBefore    time.Time `json:"not_before"`
	NotAfter     time.Time `json:"not_after"`
	DaysToExpiry int       `json:"days_to_expiry"`
	Status       string    `json:"status"` // valid, warning, critical, expired
}

// HasCertificate reports whether a client certificate is configured.
func (c *ClusterConfig) HasCertificate() bool {
	return c.TLS != nil && c.TLS.Enabled && c.TLS.CertFile != ""
}

// CertificateInfo parses the client certificate. It returns nil when no
// certificate is configured or the file is not PEM.
func (c *ClusterConfig) CertificateInfo() (*CertificateInfo, error) {
	if !c.HasCertificate() {
		return nil, nil
	}
	raw, err := os.ReadFile(c.TLS.CertFile)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, nil
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}

	days := int(time.Until(cert.NotAfter).Hours() / 24)
	status := "valid"
	switch {
	case time.Now().After(cert.NotAfter):
		status = "expired"
	case days <= 7:
		status = "critical"
	case days <= 30:
		status = "warning"
	}
	return &CertificateInfo{
		NotBefore:    cert.NotBefore,
		NotAfter:     cert.NotAfter,
		DaysToExpiry: days,
		Status:       status,
	}, nil
}
