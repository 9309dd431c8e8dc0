package models

// InitUploadReq body of /multipart/init
type InitUploadReq struct {
	Fingerprint string `json:"fingerprint" binding:"required"`         // content hash (md5/sha256) of the whole file
	FileName    string `json:"fileName" binding:"required"`            // original file name
	TotalSize   int64  `json:"totalSize" binding:"required,gt=0"`      // file size in bytes
	ChunkSize   int64  `json:"chunkSize" binding:"required,gt=0"`      // chunk size in bytes
	ChunkCount  int    `json:"chunkCount" binding:"required,gt=0"`     // total number of chunks
}

// ChunkUploadResp .
type ChunkUploadResp struct {
	ChunkIndex   int    `json:"chunkIndex"`
	ReceiptToken string `json:"receiptToken"`
}

// SingleUploadResp .
type SingleUploadResp struct {
	Url string `json:"url"`
}
