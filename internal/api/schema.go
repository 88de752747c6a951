// Package api binds the GraphQL schema to the store. Every field in
// schema.graphql resolves through a method on Resolver or one of the
// per-type resolvers.
package api

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"
	"github.com/jotter-dev/jotter/internal/store"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema parses the SDL and checks every field against the resolvers.
func NewSchema(s store.Store, logger *zap.Logger) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, &Resolver{store: s, logger: logger},
		graphql.Logger(panicLogger{logger: logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}
	return schema, nil
}

type panicLogger struct {
	logger *zap.Logger
}

func (l panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.logger.Error("graphql: panic occurred", zap.Any("panic", value), zap.Stack("stack"))
}
