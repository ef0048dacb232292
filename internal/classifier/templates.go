package classifier

// Current templates ignore the request text.

func authTemplate(string) string {
	return `Hello! I can help you with your password issue.

Here's how to reset your password:
1. Go to the login page
2. Click "Forgot Password"
3. Enter your email address
4. Check your email for reset instructions
5. Follow the link to create a new password

If you continue to have issues, I'll escalate this to our IT team.`
}

func hrTemplate(string) string {
	return `Hi there! I can help you with your HR inquiry.

To check your leave balance:
1. Log into the employee portal
2. Navigate to "HR Services" → "Leave Management"
3. Your current balance will be displayed

If you need assistance accessing the portal or have other HR questions, I'll connect you with our HR team.`
}

func itTemplate(string) string {
	return `Hello! I'm here to help with your IT support request.

For common IT issues, try these steps:
1. Restart your computer/application
2. Check your network connection
3. Clear your browser cache if it's a web issue

If the problem persists, I'll create a ticket for our IT support team to assist you further.`
}

func systemTemplate(string) string {
	return `Hi! I understand you're experiencing a system issue.

I've logged this as a high-priority ticket. Our technical team will:
1. Investigate the issue immediately
2. Provide updates within 2 hours
3. Work on a resolution

Thank you for reporting this - it helps us maintain system quality.`
}

func generalTemplate(string) string {
	return `Hello! Thank you for contacting support.

I've received your inquiry and it will be reviewed by our support team. You can expect a response within 24 hours.

If this is urgent, please call our support hotline at 1-800-SUPPORT.`
}
