package voice

// wrapPCM prepends a 44-byte WAV header to raw PCM16 audio so the
// transcription API receives a well-formed file.
func wrapPCM(pcmData []byte, sampleRate, channels int) []byte {
	if sampleRate == 0 {
		sampleRate = 16000
	}
	if channels == 0 {
		channels = 1
	}

	bitsPerSample := 16
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8
	dataSize := len(pcmData)
	fileSize := 36 + dataSize

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	putUint32(header[4:8], uint32(fileSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	putUint32(header[16:20], 16) // fmt chunk size
	putUint16(header[20:22], 1)  // PCM format
	putUint16(header[22:24], uint16(channels))
	putUint32(header[24:28], uint32(sampleRate))
	putUint32(header[28:32], uint32(byteRate))
	putUint16(header[32:34], uint16(blockAlign))
	putUint16(header[34:36], uint16(bitsPerSample))
	copy(header[36:40], "data")
	putUint32(header[40:44], uint32(dataSize))

	return append(header, pcmData...)
}

func putUint16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
