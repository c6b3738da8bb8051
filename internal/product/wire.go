package product

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"estoque/internal/config"
	"estoque/internal/product/report"
	"estoque/internal/product/repository"
	"estoque/internal/product/service"
)

func NewModule(fs afero.Fs, cfg config.CatalogConfig, logger *zap.Logger, onCorrupt repository.CorruptionHandler) *service.CatalogService {
	repo := repository.NewJSONRepository(fs, cfg.DataFile, logger)
	repo.OnCorruption(onCorrupt)
	exporter := report.NewCSVExporter(fs, cfg.ReportFile, logger)
	return service.NewCatalogService(repo, exporter, cfg.Categories, logger)
}
