package channels

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/webstatus/digestmail/app/digest"
)

var validFrequencies = map[string]bool{
	"":          true,
	"immediate": true,
	"daily":     true,
	"weekly":    true,
	"monthly":   true,
}

type ConfigCache struct {
	channelsDir string
	cache       map[string]*Config
	mu          sync.RWMutex
}

func NewConfigCache(channelsDir string) *ConfigCache {
	return &ConfigCache{
		channelsDir: channelsDir,
		cache:       make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.channelsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.channelsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive channel ID from filename (remove .yml extension)
		fileName := filepath.Base(file)
		channelID := fileName[:len(fileName)-4]

		config, err := cc.LoadConfig(channelID)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Channel configuration loaded", "channel", channelID, "enabled", config.Settings.Enabled, "triggers", len(config.Triggers))
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(channelID string) (*Config, error) {
	configFile := cc.getConfigFilePath(channelID)
	channelConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	// Set channel ID from parameter
	channelConfig.ID = channelID

	if err := cc.validateConfig(channelConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	// Store in cache
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[channelConfig.ID] = channelConfig

	return channelConfig, nil
}

func (cc *ConfigCache) GetConfig(channelID string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	channelConfig, ok := cc.cache[channelID]
	if !ok {
		return nil, fmt.Errorf("channel config with ID '%s' not found", channelID)
	}
	return channelConfig, nil
}

func (cc *ConfigCache) GetConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configsCopy := make(map[string]*Config, len(cc.cache))
	for k, v := range cc.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (cc *ConfigCache) GetEnabledConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	enabledConfigs := make(map[string]*Config)
	for k, v := range cc.cache {
		if v.Settings.Enabled {
			enabledConfigs[k] = v
		}
	}
	return enabledConfigs
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var channelConfig Config
	if err := yaml.Unmarshal(data, &channelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &channelConfig, nil
}

func (cc *ConfigCache) validateConfig(channelConfig *Config) error {
	if channelConfig == nil {
		return fmt.Errorf("channelConfig is nil")
	}

	if channelConfig.Name == "" {
		return fmt.Errorf("channel name is required")
	}

	if !validFrequencies[channelConfig.Frequency] {
		return fmt.Errorf("invalid frequency: %s", channelConfig.Frequency)
	}

	for i, trigger := range channelConfig.Triggers {
		if !digest.KnownTrigger(trigger) {
			return fmt.Errorf("invalid trigger at index %d: %s", i, trigger)
		}
	}

	return nil
}

func (cc *ConfigCache) getConfigFilePath(channelID string) string {
	return filepath.Join(cc.channelsDir, channelID+".yml")
}
