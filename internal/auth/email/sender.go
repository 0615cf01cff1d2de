// Package email delivers account mail. The only message today is the
// verification link sent after registration.
package email

import (
	"context"

	"github.com/Hellmakima/instagram/pkg/slogx"
)

// Sender delivers a verification mail containing the given link.
type Sender interface {
	SendVerification(ctx context.Context, to, link string) error
}

// NoopSender sends nothing. Used in tests and local setups without an SMTP
// relay; the verification link is logged instead so the flow stays walkable.
type NoopSender struct{}

func (NoopSender) SendVerification(ctx context.Context, to, link string) error {
	slogx.FromContext(ctx).Info("verification mail suppressed", "to", to, "link", link)
	return nil
}
