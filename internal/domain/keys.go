package domain

// KeyPrefix namespaces every key this service writes.
const KeyPrefix = "tradehub:"
