package collection

// ExcludeSettingWidget edits glob patterns to exclude. Each row carries an
// optional "when" sibling pattern; rows cannot be reordered.
type ExcludeSettingWidget struct {
	*ListSettingWidget
}

func NewExcludeSettingWidget(cfg Config) *ExcludeSettingWidget {
	return &ExcludeSettingWidget{newListWidget(cfg, flavorExclude)}
}

// IncludeSettingWidget is the include counterpart of ExcludeSettingWidget.
type IncludeSettingWidget struct {
	*ListSettingWidget
}

func NewIncludeSettingWidget(cfg Config) *IncludeSettingWidget {
	return &IncludeSettingWidget{newListWidget(cfg, flavorInclude)}
}
