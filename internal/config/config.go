package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	API     APIConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	catalog, err := loadCatalogConfig()
	if err != nil {
		return nil, err
	}

	api, err := loadAPIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Catalog: catalog, API: api}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value %q: %w", port, err)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// CatalogConfig 描述目录数据与静态资源的来源。
type CatalogConfig struct {
	// Path 为空时使用内嵌的 ebooks.json。
	Path string
	// Locale 仅用于启动时按姓氏排序。
	Locale language.Tag
	// PublicDir 为空时使用内嵌的 public 目录。
	PublicDir string
}

func loadCatalogConfig() (CatalogConfig, error) {
	rawLocale := getEnvOrDefault("CATALOG_LOCALE", "es-ES")
	locale, err := language.Parse(rawLocale)
	if err != nil {
		return CatalogConfig{}, fmt.Errorf("invalid CATALOG_LOCALE value %q: %w", rawLocale, err)
	}

	return CatalogConfig{
		Path:      strings.TrimSpace(os.Getenv("CATALOG_PATH")),
		Locale:    locale,
		PublicDir: strings.TrimSpace(os.Getenv("PUBLIC_DIR")),
	}, nil
}

// APIConfig 描述 HTTP 接口行为。
type APIConfig struct {
	// StrictParams 为 true 时缺少查询参数返回 400，而不是默认的 404。
	StrictParams   bool
	AllowedOrigins []string
}

func loadAPIConfig() (APIConfig, error) {
	strict, err := parseBoolEnv("API_STRICT_PARAMS", false)
	if err != nil {
		return APIConfig{}, err
	}

	return APIConfig{
		StrictParams:   strict,
		AllowedOrigins: parseListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
