/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldAttempt      = "attempt"
	FieldCertPoolSize = "certPoolSize"
	FieldCheck        = "check"
	FieldCommand      = "command"
	FieldCredentials  = "credentials"
	FieldDID          = "did"
	FieldErrorKinds   = "errorKinds"
	FieldHostURL      = "hostURL"
	FieldKeyID        = "keyID"
	FieldPath         = "path"
	FieldRequest      = "request"
	FieldResponseBody = "responseBody"
	FieldStatus       = "status"
	FieldStatusType   = "statusType"
	FieldStatusTypes  = "statusTypes"
	FieldUserLogLevel = "userLogLevel"
	FieldVersion      = "version"
)

// WithAttempt sets the attempt field.
func WithAttempt(attempt int) zap.Field {
	return zap.Int(FieldAttempt, attempt)
}

// WithCertPoolSize sets the certificate pool size field.
func WithCertPoolSize(poolSize int) zap.Field {
	return zap.Int(FieldCertPoolSize, poolSize)
}

// WithCheck sets the check field.
func WithCheck(check string) zap.Field {
	return zap.String(FieldCheck, check)
}

// WithCommand sets the Command field.
func WithCommand(command string) zap.Field {
	return zap.String(FieldCommand, command)
}

// WithCredentials sets the number of credentials field.
func WithCredentials(n int) zap.Field {
	return zap.Int(FieldCredentials, n)
}

// WithDID sets the did field.
func WithDID(did string) zap.Field {
	return zap.String(FieldDID, did)
}

// WithErrorKinds sets the validation error kinds field.
func WithErrorKinds(kinds []string) zap.Field {
	return zap.Strings(FieldErrorKinds, kinds)
}

// WithHostURL sets the hostURL field.
func WithHostURL(hostURL string) zap.Field {
	return zap.String(FieldHostURL, hostURL)
}

// WithKeyID sets the keyID field.
func WithKeyID(kid string) zap.Field {
	return zap.String(FieldKeyID, kid)
}

// WithPath sets the path field.
func WithPath(path string) zap.Field {
	return zap.String(FieldPath, path)
}

// WithRequest sets the request field.
func WithRequest(req interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldRequest, req))
}

// WithResponseBody sets the response body field.
func WithResponseBody(value []byte) zap.Field {
	return zap.String(FieldResponseBody, string(value))
}

// WithStatus sets the status outcome field.
func WithStatus(status string) zap.Field {
	return zap.String(FieldStatus, status)
}

// WithStatusType sets the credential status type field.
func WithStatusType(statusType string) zap.Field {
	return zap.String(FieldStatusType, statusType)
}

// WithStatusTypes sets the status types field.
func WithStatusTypes(types []string) zap.Field {
	return zap.Strings(FieldStatusTypes, types)
}

// WithUserLogLevel sets the UserLogLevel field.
func WithUserLogLevel(userLogLevel string) zap.Field {
	return zap.String(FieldUserLogLevel, userLogLevel)
}

// WithVersion sets the version field.
func WithVersion(version string) zap.Field {
	return zap.String(FieldVersion, version)
}

// ObjectMarshaller uses reflection to marshal an object's fields.
type ObjectMarshaller struct {
	key string
	obj interface{}
}

// NewObjectMarshaller returns a new ObjectMarshaller.
func NewObjectMarshaller(key string, obj interface{}) *ObjectMarshaller {
	return &ObjectMarshaller{key: key, obj: obj}
}

// MarshalLogObject marshals the object's fields.
func (m *ObjectMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	return e.AddReflected(m.key, m.obj)
}
