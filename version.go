package flowkit

// Version is the library release version.
const Version = "0.1.0"
