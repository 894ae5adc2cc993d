package util

func GetAppName() string {
	return "NameCert"
}
