package constants

import "path/filepath"

// ConfigDirName is the name of the configuration directory in the user's home directory.
const ConfigDirName = "." + ProjectName

// ConfigFileName is the name of the global configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirPath returns the full path to the global configuration directory.
func ConfigDirPath(homeDir string) string {
	return filepath.Join(homeDir, ConfigDirName)
}

// ConfigFilePath returns the full path to the global configuration file.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDirPath(homeDir), ConfigFileName)
}

// AllRegions is the region specifier that expands to every region EC2 reports.
const AllRegions = "all"

// DefaultRegions is the region specifier used when none is given.
const DefaultRegions = AllRegions

// DefaultProfile is the shared credentials profile used when none is given.
const DefaultProfile = "default"

// DefaultKeyFileRelPath is the public key location relative to the user's home directory.
const DefaultKeyFileRelPath = ".ssh/id_rsa.pub"

// DefaultKeyFilePath returns the default public key path for the given home directory.
func DefaultKeyFilePath(homeDir string) string {
	return filepath.Join(homeDir, DefaultKeyFileRelPath)
}

// BootstrapRegion is used for region discovery when the profile has no region configured.
const BootstrapRegion = "us-east-1"
