package internal

// Version is the hanki release version.
const Version = "0.3.0"
