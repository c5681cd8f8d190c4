package app_info

// NAME the application name used for config dirs and the cli
const NAME = "rghstore"

// VERSION the current released version
const VERSION = "v0.3.1"
