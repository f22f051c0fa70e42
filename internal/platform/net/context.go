// Package net carries request scoped values and the shared response envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyClientID ctxKey = "client_id"

// WithRequest stores the request id under chi's key and the survey client id under ours
func WithRequest(ctx context.Context, reqID, clientID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if clientID != "" {
		ctx = context.WithValue(ctx, keyClientID, clientID)
	}
	return ctx
}

// RequestID returns the request id set by chi's RequestID middleware or WithRequest
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ClientID returns the survey client id on the context, if any
func ClientID(ctx context.Context) string {
	v, _ := ctx.Value(keyClientID).(string)
	return v
}
