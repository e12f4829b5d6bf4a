package format

type (
	PhysicalType    uint8
	EncodingType    uint8
	CompressionType uint8
	StatisticsLevel uint8
	PageKind        uint8
)

const (
	TypeBool      PhysicalType = 0x1 // TypeBool represents a 1-byte boolean value.
	TypeInt32     PhysicalType = 0x2 // TypeInt32 represents a 32-bit signed integer.
	TypeInt64     PhysicalType = 0x3 // TypeInt64 represents a 64-bit signed integer.
	TypeFloat32   PhysicalType = 0x4 // TypeFloat32 represents a 32-bit IEEE 754 float.
	TypeFloat64   PhysicalType = 0x5 // TypeFloat64 represents a 64-bit IEEE 754 float.
	TypeString    PhysicalType = 0x6 // TypeString represents a variable-length UTF-8 string.
	TypeTimestamp PhysicalType = 0x7 // TypeTimestamp represents a 64-bit timestamp.

	EncodingPlain      EncodingType = 0x1 // EncodingPlain stores values directly.
	EncodingDictionary EncodingType = 0x2 // EncodingDictionary stores indices into a dictionary page.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	StatisticsNone  StatisticsLevel = 0x1 // StatisticsNone disables output statistics.
	StatisticsChunk StatisticsLevel = 0x2 // StatisticsChunk emits per-column-chunk statistics.
	StatisticsPage  StatisticsLevel = 0x3 // StatisticsPage emits per-page and per-chunk statistics.

	PageData       PageKind = 0x1 // PageData holds encoded column values.
	PageDictionary PageKind = 0x2 // PageDictionary holds the dictionary for a column chunk.
)

// Width returns the fixed encoded width of the physical type in bytes,
// or 0 for variable-length types.
func (t PhysicalType) Width() int {
	switch t {
	case TypeBool:
		return 1
	case TypeInt32, TypeFloat32:
		return 4
	case TypeInt64, TypeFloat64, TypeTimestamp:
		return 8
	default:
		return 0
	}
}

// Valid reports whether the physical type is a known type.
func (t PhysicalType) Valid() bool {
	return t >= TypeBool && t <= TypeTimestamp
}

func (t PhysicalType) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	case TypeString:
		return "String"
	case TypeTimestamp:
		return "Timestamp"
	default:
		return "Unknown"
	}
}

func (e EncodingType) String() string {
	switch e {
	case EncodingPlain:
		return "Plain"
	case EncodingDictionary:
		return "Dictionary"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (k PageKind) String() string {
	switch k {
	case PageData:
		return "Data"
	case PageDictionary:
		return "Dictionary"
	default:
		return "Unknown"
	}
}

func (s StatisticsLevel) String() string {
	switch s {
	case StatisticsNone:
		return "None"
	case StatisticsChunk:
		return "Chunk"
	case StatisticsPage:
		return "Page"
	default:
		return "Unknown"
	}
}
