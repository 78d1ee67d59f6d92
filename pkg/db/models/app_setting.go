package models

// AppSetting is a key/value row for UI and backup preferences.
type AppSetting struct {
	Key   string  `gorm:"column:key;primaryKey"`
	Value *string `gorm:"column:value"`
}

func (AppSetting) TableName() string { return "app_settings" }
