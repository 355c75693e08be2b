package xtrace

// Facade helpers using global Singleton logger.
// Usage: xtrace.Info("billing").Str("k","v").Msg("hello")

func Success(context string) *Event  { return L().Success(context) }
func Info(context string) *Event     { return L().Info(context) }
func Warning(context string) *Event  { return L().Warning(context) }
func Failure(context string) *Event  { return L().Failure(context) }
func Error(context string) *Event    { return L().Error(context) }
func Critical(context string) *Event { return L().Critical(context) }
