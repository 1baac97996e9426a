package tagger

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TagSetting struct {
	Logger              *logrus.Logger
	GetMetadataDatabase func() *gorm.DB
}

var globalSetting TagSetting

func Init(setting *TagSetting) {
	globalSetting = *setting
}

// NewTaggerFromDatabase loads every protein symbol already stored with a candidate as the gazetteer.
func NewTaggerFromDatabase(ctx context.Context) (*Tagger, error) {
	return newTaggerFromDatabase(&globalSetting, ctx)
}
