package consts

// Table file layout
const (
	HEADERSIZE     = 32
	FIELDSIZE      = 32
	FIELDNAMESIZE  = 11
	MAXFIELDNAME   = 10
	MAXRECORDSIZE  = 0xffff
	LANGUAGEOFFSET = 29
)

// Markers
const (
	TERMINATOR byte = 0x0D
	EOF        byte = 0x1A
	DELETED    byte = '*'
	ACTIVE     byte = ' '
)

// Version bytes written on create.
const (
	DBASE3      byte = 0x03
	DBASE3_MEMO byte = 0x83
)

// Memo side file layout
const (
	MEMO_BLOCKSIZE     = 512
	MEMO_HEADERSIZE    = 512
	MEMO_VERSIONOFFSET = 16
)

const MEMO_VERSION byte = 0x03

var MEMO_TERMINATOR = []byte{0x1A, 0x1A}

// Language driver ids
const (
	LANGUAGE_RUSSIAN_DOS     byte = 0x66
	LANGUAGE_RUSSIAN_WINDOWS byte = 0xC9
)
