package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Static StaticConfig `yaml:"static"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// StaticConfig は静的ファイル配信の設定
type StaticConfig struct {
	Root  string `yaml:"root"`  // ドキュメントルート
	Index string `yaml:"index"` // ルートパスで配信するインデックスファイル名

	// trueの場合、すべてのレスポンスにキャッシュ無効化ヘッダーを付与する
	DisableCache bool `yaml:"disable_cache"`
}

// Load は設定を読み込む
// 環境変数とデフォルト値から設定を組み立て、CONFIG_FILEが
// 指定されていればYAMLファイルの内容を上書きする
func Load() (*Config, error) {
	// デフォルト設定を作成
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsIntOrDefault("PORT", 3000),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 0, // 大きなファイルの転送用にタイムアウト無効化
		},
		Static: StaticConfig{
			Root:         getEnvOrDefault("DOCUMENT_ROOT", "."),
			Index:        getEnvOrDefault("INDEX_FILE", "index.html"),
			DisableCache: getEnvAsBoolOrDefault("DISABLE_CACHE", false),
		},
	}

	// YAML設定ファイルによる上書き
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// LoadFile は設定を読み込み、指定されたYAMLファイルの内容で上書きする
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// mergeFile はYAMLファイルに含まれる項目だけを現在の設定に上書きする
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗: %w", err)
	}

	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	// ドキュメントルートの検証
	info, err := os.Stat(c.Static.Root)
	if err != nil {
		return fmt.Errorf("ドキュメントルートにアクセスできません: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("ドキュメントルートがディレクトリではありません: %s", c.Static.Root)
	}

	// インデックスファイル名の検証（パス区切りを含んではいけない）
	if c.Static.Index == "" || strings.ContainsAny(c.Static.Index, `/\`) {
		return fmt.Errorf("無効なインデックスファイル名: %q", c.Static.Index)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault は環境変数を真偽値として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
