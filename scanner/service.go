package scanner

// wellKnownServices maps common ports to service names for display purposes.
var wellKnownServices = map[int]string{
	20: "ftp-data", 21: "ftp", 22: "ssh", 23: "telnet",
	25: "smtp", 53: "dns", 80: "http", 110: "pop3",
	143: "imap", 443: "https", 445: "smb", 993: "imaps",
	995: "pop3s", 3306: "mysql", 3389: "rdp", 5432: "postgresql",
	6379: "redis", 8080: "http-alt", 8443: "https-alt", 27017: "mongodb",
}

// ServiceName returns the well-known service name for a port, or the empty
// string when the port has no registered name.
func ServiceName(port int) string {
	return wellKnownServices[port]
}
