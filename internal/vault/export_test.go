package vault

// DecodeDocumentForTest exposes payload decoding to the external test package.
var DecodeDocumentForTest = decodeDocument
