package protocol

import "strconv"

// ResponseCode is one of the pre-encoded, protocol-stable response
// identifiers of the wire protocol. The numeric codes 0..11 and the named
// strings share the same '!' tsymbol; Bytes reports whichever wire
// form applies.
type ResponseCode struct {
	numeric int
	name    string // non-empty for named (string) codes
}

func numCode(n int) ResponseCode { return ResponseCode{numeric: n} }
func strCode(s string) ResponseCode { return ResponseCode{numeric: -1, name: s} }

var (
	RespOkay              = numCode(0)
	RespNil               = numCode(1)
	RespOverwriteError    = numCode(2)
	RespActionError       = numCode(3)
	RespPacketError       = numCode(4)
	RespServerError       = numCode(5)
	RespOtherError        = numCode(6)
	RespWrongtype         = numCode(7)
	RespUnknownDataType   = numCode(8)
	RespEncodingError     = numCode(9)
	RespBadCredentials    = numCode(10)
	RespInsufficientPerms = numCode(11)

	RespSnapshotBusy          = strCode("err-snapshot-busy")
	RespSnapshotDisabled      = strCode("err-snapshot-disabled")
	RespDuplicateSnapshot     = strCode("duplicate-snapshot")
	RespInvalidSnapshotName   = strCode("err-invalid-snapshot-name")
	RespDefaultContainerUnset = strCode("default-container-unset")
	RespContainerNotFound     = strCode("container-not-found")
	RespStillInUse            = strCode("still-in-use")
	RespProtectedObject       = strCode("err-protected-object")
	RespWrongModel            = strCode("wrong-model")
	RespAlreadyExists         = strCode("err-already-exists")
	RespNotReady              = strCode("not-ready")
	RespTransactionalFailure  = strCode("transactional-failure")
	RespUnknownDDLQuery       = strCode("unknown-ddl-query")
	RespMalformedExpression   = strCode("malformed-expression")
	RespUnknownModel          = strCode("unknown-model")
	RespTooManyArgs           = strCode("too-many-args")
	RespContainerNameTooLong  = strCode("container-name-too-long")
	RespBadContainerName      = strCode("bad-container-name")
	RespUnknownInspectQuery   = strCode("unknown-inspect-query")
	RespUnknownProperty       = strCode("unknown-property")
	RespKeyspaceNotEmpty      = strCode("keyspace-not-empty")
	RespBadTypeForKey         = strCode("bad-type-for-key")
	RespBadListIndex          = strCode("bad-list-index")
	RespListIsEmpty           = strCode("list-is-empty")
	RespUnknownAction         = strCode("unknown-action")

	RespAuthBadCredentials   = strCode("err-auth-badcredentials")
	RespAuthAlreadyClaimed   = strCode("err-auth-alreadyclaimed")
	RespAuthNotLoggedIn      = strCode("err-auth-notloggedin")
	RespAuthPermissionDenied = strCode("err-auth-permissiondenied")
	RespAuthUnknownUser      = strCode("err-auth-unknownuser")
	RespAuthCannotDeleteRoot = strCode("err-auth-cannotdeleteroot")
	RespAuthDisabled         = strCode("err-auth-disabled")
)

// Bytes reports the wire body written after the '!' tsymbol's length
// prefix: an ASCII decimal for numeric codes, the literal name for
// named/string codes.
func (r ResponseCode) Bytes() []byte {
	if r.name != "" {
		return []byte(r.name)
	}
	return []byte(strconv.Itoa(r.numeric))
}
