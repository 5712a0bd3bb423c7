package analysis

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"skillgap/database"
)

// ExportGapsParquet exécute un run et sérialise le détail des gaps en
// Parquet, entièrement en mémoire (aucune écriture disque).
func (s *Service) ExportGapsParquet() ([]byte, error) {
	result, err := s.Run()
	if err != nil {
		return nil, err
	}

	pfile, err := buffer.NewBufferFile(nil)
	if err != nil {
		return nil, fmt.Errorf("parquet buffer init: %w", err)
	}
	file := pfile.(buffer.BufferFile)

	pw, err := writer.NewParquetWriter(file, new(database.GapParquet), 2)
	if err != nil {
		return nil, fmt.Errorf("parquet writer init: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, g := range result.Gaps {
		record := database.GapParquet{
			EmployeeID:    g.EmployeeID,
			Name:          g.Name,
			Surname:       g.Surname,
			Role:          g.Role,
			SkillName:     g.SkillName,
			SkillLevel:    g.SkillLevel,
			RequiredLevel: g.RequiredLevel,
			Gap:           g.Gap,
			Weight:        g.Weight,
			Severity:      g.Severity,
		}
		if err := pw.Write(record); err != nil {
			return nil, fmt.Errorf("parquet write: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("parquet finalize: %w", err)
	}

	// Les écritures passent par le bytes.Buffer partagé du BufferFile
	return file.Bytes(), nil
}
