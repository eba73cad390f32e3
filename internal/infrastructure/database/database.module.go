package database

import (
	"go.uber.org/fx"

	"gestor-igrejas-core/internal/infrastructure/database/mongodb"
	"gestor-igrejas-core/internal/infrastructure/database/postgres"
	"gestor-igrejas-core/internal/infrastructure/database/redis"
)

// Module agrupa a infraestrutura de persistência
// PostgreSQL = fonte de verdade, Redis = cache, MongoDB = trilha de auditoria
var Module = fx.Options(
	postgres.Module,
	redis.Module,
	mongodb.Module,
)
