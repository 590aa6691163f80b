package setting

type SettingRequest struct {
	Key   string `json:"key" binding:"required,max=64"`
	Value string `json:"value" binding:"max=4096"`
}
