package config

type OssConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	PublicHost      string `json:"public_host" yaml:"public_host"` // 制品对外访问域名
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`
}
