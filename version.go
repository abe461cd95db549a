package main

// _version is the version of blogkit reported by -version.
// Release builds override it with -ldflags "-X main._version=...".
var _version = "v0.1.0-dev"
