package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	base := Config{port: 8080, codeLength: 4, token: "t"}

	valid := base
	assert.NoError(t, valid.validate())

	consoleOnly := base
	consoleOnly.token = ""
	consoleOnly.console = true
	assert.NoError(t, consoleOnly.validate())

	noTransport := base
	noTransport.token = ""
	assert.Error(t, noTransport.validate())

	badPort := base
	badPort.port = 0
	assert.Error(t, badPort.validate())

	badCode := base
	badCode.codeLength = 2
	assert.Error(t, badCode.validate())

	halfTLS := base
	halfTLS.tlsCert = "cert.pem"
	assert.Error(t, halfTLS.validate())
}
