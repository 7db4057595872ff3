// Package config populates typed configuration structs from the environment.
//
// Fields are described with caarlos0/env tags and, optionally, with
// go-playground/validator constraints checked after parsing:
//
//	type MailConfig struct {
//		Provider    string `env:"MAIL_PROVIDER" envDefault:"postmark" validate:"oneof=postmark smtp dev none"`
//		SenderEmail string `env:"SENDER_EMAIL,required" validate:"email"`
//	}
//
//	var cfg MailConfig
//	if err := config.Load(&cfg); err != nil {
//		// missing variable, bad value or failed constraint
//	}
//
// A .env file in the working directory is read once, on the first Load call.
// Variables already present in the process environment win over the file.
package config
