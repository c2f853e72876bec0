package version

// Version is the current clientele release version
const Version = "0.3.1"
