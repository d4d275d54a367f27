package share

// VERSION UI Schema Engine Version
const VERSION = "0.3.0"

// PRVERSION UI Schema Engine PR Commit
const PRVERSION = "DEV"

// BUILDNAME the command name
const BUILDNAME = "uischema"
