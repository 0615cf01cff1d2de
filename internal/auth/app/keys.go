package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Hellmakima/instagram/pkg/cryptox"
	"github.com/Hellmakima/instagram/pkg/jwtx"
)

// initCodec builds the token codec from configured key material.
//
// When AUTH_ACCESS_KEY_FILE is unset a fresh RSA key is generated on
// startup; every previously issued token becomes invalid. Same for the
// HS256 secrets. Fine for dev, configure real material in prod.
func initCodec(cfg Config, logger *slog.Logger) (*jwtx.Codec, error) {
	var pemKey []byte
	if cfg.AccessKeyFile != "" {
		data, err := os.ReadFile(cfg.AccessKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read access key file: %w", err)
		}
		pemKey = data
		logger.Info("loaded RSA access key", "path", cfg.AccessKeyFile)
	} else {
		generated, err := cryptox.GenerateRSAKeyPKCS8(2048)
		if err != nil {
			return nil, fmt.Errorf("generate ephemeral RSA key: %w", err)
		}
		pemKey = generated
		logger.Warn("generated ephemeral RSA key, existing access tokens are now invalid")
	}

	refreshSecret := []byte(cfg.RefreshSecret)
	if len(refreshSecret) == 0 {
		refreshSecret = []byte(cryptox.MustGenerateToken(cryptox.TokenSize256))
		logger.Warn("generated ephemeral refresh secret, existing refresh tokens are now invalid")
	}

	emailSecret := []byte(cfg.EmailSecret)
	if len(emailSecret) == 0 {
		emailSecret = []byte(cryptox.MustGenerateToken(cryptox.TokenSize256))
		logger.Warn("generated ephemeral email secret, pending verification links are now invalid")
	}

	codec, err := jwtx.NewCodec(cfg.Issuer, pemKey, refreshSecret, emailSecret)
	if err != nil {
		return nil, fmt.Errorf("initialize token codec: %w", err)
	}
	return codec, nil
}
