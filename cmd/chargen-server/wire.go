//go:build wireinject

package main

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/swn-chargen/internal/chargen"
	"github.com/cory-johannsen/swn-chargen/internal/config"
	"github.com/cory-johannsen/swn-chargen/internal/frontend/httpapi"
	"github.com/cory-johannsen/swn-chargen/internal/game/character"
	"github.com/cory-johannsen/swn-chargen/internal/game/dice"
	"github.com/cory-johannsen/swn-chargen/internal/game/ruleset"
	"github.com/cory-johannsen/swn-chargen/internal/game/session"
)

var rulesSet = wire.NewSet(
	dice.NewCryptoSource,
	dice.NewLoggedRoller,
	wire.Bind(new(ruleset.Roller), new(*dice.Roller)),
	ruleset.NewRuleTable,
	wire.Bind(new(character.Rules), new(*ruleset.RuleTable)),
)

var apiSet = wire.NewSet(
	wire.FieldsOf(new(config.Config), "Session", "CORS", "Upload"),
	session.NewManager,
	chargen.NewService,
	httpapi.NewSessionCookies,
	httpapi.NewAPI,
)

// initializeAPI builds the HTTP API and its dependencies from cfg.
func initializeAPI(cfg config.Config, logger *zap.Logger) (*httpapi.API, error) {
	wire.Build(rulesSet, apiSet)
	return nil, nil
}
