package app

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/xminds/pkg/cryptox"
	"github.com/aussiebroadwan/xminds/pkg/jwtx"
)

// signingKeys bundles the signer and the verifier built over its public key.
type signingKeys struct {
	signer   *jwtx.EdDSASigner
	keys     *jwtx.KeySet
	verifier *jwtx.EdDSAVerifier
}

// initSigningKeys loads the Ed25519 key from cfg.SigningKey, creating the
// file on first start. Without a path the key lives in memory only and every
// issued token dies with the process.
func initSigningKeys(cfg Config, logger *slog.Logger) (*signingKeys, error) {
	pemKey, err := cryptox.LoadOrGenerateEd25519Key(cfg.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	kid, err := keyID(pemKey)
	if err != nil {
		return nil, err
	}
	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	if cfg.SigningKey == "" {
		logger.Warn("using an ephemeral signing key; tokens will not survive a restart")
	} else {
		logger.Info("signing key loaded", "path", cfg.SigningKey, "kid", signer.KID())
	}

	return &signingKeys{
		signer:   signer,
		keys:     keys,
		verifier: jwtx.NewVerifierEdDSA(keys, cfg.Issuer, nil),
	}, nil
}

// keyID derives a stable kid from the public half of the key.
func keyID(pemKey []byte) (string, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return "", fmt.Errorf("signing key is not PEM encoded")
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return "", fmt.Errorf("failed to parse signing key: %w", err)
	}
	priv, ok := key.(ed25519.PrivateKey)
	if !ok {
		return "", fmt.Errorf("signing key is not an Ed25519 key")
	}

	sum := sha256.Sum256(priv.Public().(ed25519.PublicKey))
	return base64.RawURLEncoding.EncodeToString(sum[:8]), nil
}
