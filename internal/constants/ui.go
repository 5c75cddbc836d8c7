package constants

// RegionBannerFill is the run of '=' framing a region header in list output.
const RegionBannerFill = "======="
