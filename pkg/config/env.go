package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvSeed        = "MONMON_SEED"
	EnvWindowScale = "MONMON_WINDOW_SCALE"
	EnvDebug       = "MONMON_DEBUG"
	EnvVerbose     = "MONMON_VERBOSE"
)

// EnvOverrides 来自环境变量的覆盖项，零值表示未设置
type EnvOverrides struct {
	Seed        int64
	WindowScale int
	Debug       bool
	Verbose     bool
}

// LoadDotEnv 加载 .env 文件（本地开发用），文件不存在时静默跳过
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to stat %s: %w", f, err)
		}
		existing = append(existing, f)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	log.Printf("[Config] Loaded env files: %v", existing)
	return nil
}

// ReadEnvOverrides 读取 MONMON_* 环境变量
func ReadEnvOverrides() (EnvOverrides, error) {
	var o EnvOverrides

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return o, fmt.Errorf("invalid %s=%q: %w", EnvSeed, v, err)
		}
		o.Seed = seed
	}

	if v := os.Getenv(EnvWindowScale); v != "" {
		scale, err := strconv.Atoi(v)
		if err != nil || scale <= 0 {
			return o, fmt.Errorf("invalid %s=%q: must be a positive integer", EnvWindowScale, v)
		}
		o.WindowScale = scale
	}

	var err error
	if o.Debug, err = parseEnvBool(EnvDebug); err != nil {
		return o, err
	}
	if o.Verbose, err = parseEnvBool(EnvVerbose); err != nil {
		return o, err
	}

	return o, nil
}

func parseEnvBool(name string) (bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s=%q: %w", name, v, err)
	}
	return b, nil
}

// Apply 把覆盖项写入模拟器配置
func (o EnvOverrides) Apply(cfg *SimulatorConfig) {
	if o.WindowScale > 0 {
		cfg.Display.WindowScale = o.WindowScale
	}
}
