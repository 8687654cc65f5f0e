package migrations

import "embed"

// Files expõe os arquivos de migração, aplicados em ordem lexicográfica.
//
//go:embed *.sql
var Files embed.FS
