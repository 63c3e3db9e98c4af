package scan

const unknownService = "Unknown"

var knownPorts = map[uint16]string{
	21:    "FTP",
	22:    "SSH",
	23:    "Telnet",
	25:    "SMTP",
	53:    "DNS",
	80:    "HTTP",
	110:   "POP3",
	143:   "IMAP",
	443:   "HTTPS",
	445:   "SMB",
	631:   "IPP (CUPS)",
	3306:  "MySQL",
	3389:  "RDP",
	5037:  "ADB",
	5432:  "PostgreSQL",
	6379:  "Redis",
	8080:  "HTTP-Proxy",
	27017: "MongoDB",
}

func DescribePort(port uint16) string {
	if s, ok := knownPorts[port]; ok {
		return s
	}

	return unknownService
}
