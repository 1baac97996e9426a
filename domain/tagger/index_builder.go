package tagger

import (
	"context"

	"gorm.io/gorm"

	"ppaxe-backend-controller/repository/metadata"
)

type indexBuilder struct {
	// inputs
	ctx context.Context

	// outputs
	proteinIndex map[string]struct{}
	maxWords     int
}

func (b *indexBuilder) Build(tx *gorm.DB) error {
	b.proteinIndex = make(map[string]struct{})
	b.maxWords = 0

	return b.build(tx)
}

func (b *indexBuilder) build(tx *gorm.DB) error {
	var batchData []metadata.Candidate

	res := tx.Select("id", "prot1_symbol", "prot2_symbol").
		FindInBatches(&batchData, 128, func(tx *gorm.DB, batchNum int) error {
			if err := b.ctx.Err(); err != nil {
				return err
			}

			for i := 0; i < len(batchData); i++ {
				b.add(batchData[i].Prot1Symbol)
				b.add(batchData[i].Prot2Symbol)
			}

			batchData = nil
			return nil
		})

	return res.Error
}

func (b *indexBuilder) add(symbol string) {
	key, words := indexKey(symbol)
	if words == 0 {
		return
	}

	b.proteinIndex[key] = struct{}{}
	if words > b.maxWords {
		b.maxWords = words
	}
}
