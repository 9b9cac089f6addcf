// Package model owns the regression model behind the prediction API.
//
// A Store is built once at startup from a JSON artifact written by the trainer.
// A missing artifact leaves the store unloaded (Ready reports false) so the
// service can still answer health checks; an artifact that exists but cannot be
// decoded is a startup error. Once built, a Store is never mutated and is safe
// for concurrent use.
package model
